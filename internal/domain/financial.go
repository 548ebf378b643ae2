package domain

import "time"

// Tipos de organização suportados pela projeção financeira
const (
	OrgTypeStartup    = "startup"
	OrgTypeEnterprise = "enterprise"
	OrgTypeEvent      = "event"
	OrgTypeFreelance  = "freelance"
	OrgTypeOther      = "other"
)

// RunwayUnbounded é o valor sentinela de runway quando as despesas são zero
const RunwayUnbounded = -1

// Categorias de parâmetros customizados
const (
	ParameterCategoryIncome     = "income"
	ParameterCategoryExpense    = "expense"
	ParameterCategoryInvestment = "investment"
	ParameterCategoryOther      = "other"
)

// CustomParameter é um parâmetro ajustável definido pelo usuário
type CustomParameter struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Step     float64 `json:"step"`
	Category string  `json:"category"`
}

// SimulationInputs são os parâmetros ajustáveis de uma simulação mensal
type SimulationInputs struct {
	Employees        int               `json:"employees"`
	MarketingSpend   float64           `json:"marketing_spend"`
	ProductPrice     float64           `json:"product_price"`
	MiscExpenses     float64           `json:"misc_expenses"`
	CurrentFunds     float64           `json:"current_funds"`
	CustomParameters []CustomParameter `json:"custom_parameters,omitempty"`
}

// FinancialData é o resultado imutável de uma projeção
type FinancialData struct {
	Revenue      float64 `json:"revenue"`
	Expenses     float64 `json:"expenses"`
	NetProfit    float64 `json:"net_profit"`
	Runway       int     `json:"runway"`
	ProfitMargin float64 `json:"profit_margin"`
}

// RunwayIsUnbounded indica se o caixa atual cobre as despesas indefinidamente
func (f FinancialData) RunwayIsUnbounded() bool {
	return f.Runway == RunwayUnbounded
}

// FinancialContext é a visão derivada da última projeção, usada como
// contexto de conversa pelo consultor de IA
type FinancialContext struct {
	CurrentRevenue   float64 `json:"current_revenue"`
	ProjectedRevenue float64 `json:"projected_revenue"`
	Expenses         float64 `json:"expenses"`
	GrowthRate       float64 `json:"growth_rate"`
	TimeHorizon      int     `json:"time_horizon"`
	CashFlow         float64 `json:"cash_flow"`
	ProfitMargin     float64 `json:"profit_margin"`
}

// HistoricalPoint é um ponto da série histórica exibida nos gráficos
type HistoricalPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// Simulation é uma simulação nomeada persistida pelo usuário
type Simulation struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Inputs      SimulationInputs `json:"inputs"`
	Results     FinancialData    `json:"results"`
	CreatedAt   time.Time        `json:"created_at"`
}

// FinancialSnapshot é a última foto dos dados financeiros do usuário na base
type FinancialSnapshot struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CurrentFunds    float64   `json:"current_funds"`
	MonthlyRevenue  float64   `json:"monthly_revenue"`
	MonthlyExpenses float64   `json:"monthly_expenses"`
	Employees       int       `json:"employees"`
	MarketingSpend  float64   `json:"marketing_spend"`
	ProductPrice    float64   `json:"product_price"`
	MiscExpenses    float64   `json:"misc_expenses"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
