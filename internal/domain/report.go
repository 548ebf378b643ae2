package domain

import "time"

// MonthlyReport é o consolidado mensal gerado a partir das transações
type MonthlyReport struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	TotalRevenue  float64            `json:"total_revenue"`
	TotalExpenses float64            `json:"total_expenses"`
	NetProfit     float64            `json:"net_profit"`
	CashFlow      map[string]float64 `json:"cash_flow,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CashFlowSummary resume entradas e saídas das transações recentes
type CashFlowSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetCashFlow   float64 `json:"net_cash_flow"`
}

// UsageStats são os contadores de uso exibidos no dashboard
type UsageStats struct {
	Simulations int `json:"simulations"`
	Exports     int `json:"exports"`
}

// FinancialSummary agrega os dados exibidos no painel principal
type FinancialSummary struct {
	FinancialData      *FinancialSnapshot `json:"financial_data"`
	RecentTransactions []*Transaction     `json:"recent_transactions"`
	SimulationCount    int                `json:"simulation_count"`
	CashFlowSummary    CashFlowSummary    `json:"cash_flow_summary"`
	UsageStats         UsageStats         `json:"usage_stats"`
}
