package projecting

import (
	"math"

	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

// Projector calcula a projeção financeira mensal a partir dos parâmetros
// ajustáveis e do tipo de organização do usuário
type Projector interface {
	Run(inputs domain.SimulationInputs, orgType string) domain.FinancialData
	ContextFrom(inputs domain.SimulationInputs, result domain.FinancialData, snapshot *domain.FinancialSnapshot) domain.FinancialContext
}

// orgProfile guarda os coeficientes de projeção por tipo de organização
type orgProfile struct {
	multiplier    float64
	baseSalary    float64
	baseFixedCost float64
}

// Coeficientes por tipo de organização. Tipos desconhecidos caem no
// perfil de "other".
var orgProfiles = map[string]orgProfile{
	domain.OrgTypeStartup:    {multiplier: 1.2, baseSalary: 70000, baseFixedCost: 300000},
	domain.OrgTypeEnterprise: {multiplier: 1.0, baseSalary: 60000, baseFixedCost: 300000},
	domain.OrgTypeEvent:      {multiplier: 0.8, baseSalary: 60000, baseFixedCost: 200000},
	domain.OrgTypeFreelance:  {multiplier: 1.0, baseSalary: 60000, baseFixedCost: 300000},
	domain.OrgTypeOther:      {multiplier: 1.0, baseSalary: 60000, baseFixedCost: 300000},
}

// baseUnitsSold é a quantidade mensal de vendas antes do multiplicador
const baseUnitsSold = 100

// defaultTimeHorizonMonths é o horizonte padrão usado no contexto do consultor
const defaultTimeHorizonMonths = 12

type service struct{}

func NewService() Projector {
	return &service{}
}

// Run aplica as fórmulas de projeção de forma determinística: mesma
// entrada e mesmo tipo de organização sempre produzem o mesmo resultado
func (s *service) Run(inputs domain.SimulationInputs, orgType string) domain.FinancialData {
	profile, ok := orgProfiles[orgType]
	if !ok {
		profile = orgProfiles[domain.OrgTypeOther]
	}

	quantity := math.Floor(baseUnitsSold * profile.multiplier)
	revenue := inputs.ProductPrice * quantity * profile.multiplier

	// Os parâmetros customizados das entradas são descritivos: ficam
	// gravados com a simulação, mas não entram nas fórmulas
	expenses := profile.baseFixedCost +
		profile.baseSalary*float64(inputs.Employees) +
		inputs.MarketingSpend +
		inputs.MiscExpenses

	netProfit := revenue - expenses

	runway := domain.RunwayUnbounded
	if expenses > 0 {
		runway = int(math.Floor(inputs.CurrentFunds / expenses))
	}

	// Margem sem arredondamento; a apresentação formata onde precisa
	margin := 0.0
	if revenue != 0 {
		margin = 100 * netProfit / revenue
	}

	return domain.FinancialData{
		Revenue:      revenue,
		Expenses:     expenses,
		NetProfit:    netProfit,
		Runway:       runway,
		ProfitMargin: margin,
	}
}

// ContextFrom deriva o contexto financeiro do consultor a partir da última
// projeção. A receita atual vem da última foto persistida quando existe;
// sem foto, assume a própria projeção como base e crescimento zero.
func (s *service) ContextFrom(inputs domain.SimulationInputs, result domain.FinancialData, snapshot *domain.FinancialSnapshot) domain.FinancialContext {
	currentRevenue := result.Revenue
	if snapshot != nil && snapshot.MonthlyRevenue > 0 {
		currentRevenue = snapshot.MonthlyRevenue
	}

	growthRate := 0.0
	if currentRevenue != 0 {
		growthRate = utils.RoundWithTwoDecimalPlace(100 * (result.Revenue - currentRevenue) / currentRevenue)
	}

	return domain.FinancialContext{
		CurrentRevenue:   currentRevenue,
		ProjectedRevenue: result.Revenue,
		Expenses:         result.Expenses,
		GrowthRate:       growthRate,
		TimeHorizon:      defaultTimeHorizonMonths,
		CashFlow:         result.NetProfit,
		ProfitMargin:     result.ProfitMargin,
	}
}
