package projecting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

var baseInputs = domain.SimulationInputs{
	Employees:      5,
	MarketingSpend: 200000,
	ProductPrice:   2999,
	MiscExpenses:   150000,
	CurrentFunds:   5000000,
}

func TestService_Run(t *testing.T) {
	service := NewService()

	tests := []struct {
		name     string
		inputs   domain.SimulationInputs
		orgType  string
		expected domain.FinancialData
	}{
		{
			name:    "Organização padrão - fórmulas com multiplicador 1.0",
			inputs:  baseInputs,
			orgType: domain.OrgTypeOther,
			expected: domain.FinancialData{
				Revenue:      299900,
				Expenses:     950000,
				NetProfit:    -650100,
				Runway:       5,
				ProfitMargin: -216.77,
			},
		},
		{
			name:    "Startup - multiplicador 1.2 eleva quantidade e salário base",
			inputs:  baseInputs,
			orgType: domain.OrgTypeStartup,
			expected: domain.FinancialData{
				Revenue:      431856,
				Expenses:     1000000,
				NetProfit:    -568144,
				Runway:       5,
				ProfitMargin: -131.56,
			},
		},
		{
			name:    "Evento - multiplicador 0.8 e custo fixo menor",
			inputs:  baseInputs,
			orgType: domain.OrgTypeEvent,
			expected: domain.FinancialData{
				Revenue:      191936,
				Expenses:     850000,
				NetProfit:    -658064,
				Runway:       5,
				ProfitMargin: -342.86,
			},
		},
		{
			name:    "Tipo desconhecido cai no perfil padrão",
			inputs:  baseInputs,
			orgType: "cooperative",
			expected: domain.FinancialData{
				Revenue:      299900,
				Expenses:     950000,
				NetProfit:    -650100,
				Runway:       5,
				ProfitMargin: -216.77,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.Run(tt.inputs, tt.orgType)
			assert.Equal(t, tt.expected.Revenue, result.Revenue)
			assert.Equal(t, tt.expected.Expenses, result.Expenses)
			assert.Equal(t, tt.expected.NetProfit, result.NetProfit)
			assert.Equal(t, tt.expected.Runway, result.Runway)
			assert.InDelta(t, tt.expected.ProfitMargin, result.ProfitMargin, 0.01)
		})
	}
}

func TestService_Run_Determinism(t *testing.T) {
	service := NewService()

	first := service.Run(baseInputs, domain.OrgTypeStartup)
	second := service.Run(baseInputs, domain.OrgTypeStartup)

	assert.Equal(t, first, second)
}

func TestService_Run_EdgeCases(t *testing.T) {
	service := NewService()

	t.Run("Preço zero mantém margem em zero sem divisão por zero", func(t *testing.T) {
		inputs := baseInputs
		inputs.ProductPrice = 0

		result := service.Run(inputs, domain.OrgTypeOther)

		assert.Equal(t, 0.0, result.Revenue)
		assert.Equal(t, 0.0, result.ProfitMargin)
	})

	t.Run("Parâmetros customizados não alteram receita nem despesas", func(t *testing.T) {
		inputs := baseInputs
		inputs.CustomParameters = []domain.CustomParameter{
			{Label: "Consultoria", Value: 50000, Category: domain.ParameterCategoryIncome},
			{Label: "Licenças", Value: 50000, Category: domain.ParameterCategoryExpense},
			{Label: "Equipamentos", Value: 30000, Category: domain.ParameterCategoryInvestment},
		}

		result := service.Run(inputs, domain.OrgTypeOther)

		assert.Equal(t, 299900.0, result.Revenue)
		assert.Equal(t, 950000.0, result.Expenses)
		assert.Equal(t, -650100.0, result.NetProfit)
		assert.Equal(t, 5, result.Runway)
	})

	t.Run("Identidade das despesas: fixo + salários + marketing + diversos", func(t *testing.T) {
		inputs := baseInputs
		inputs.CustomParameters = []domain.CustomParameter{
			{Label: "Licenças", Value: -300000, Category: domain.ParameterCategoryExpense},
		}

		result := service.Run(inputs, domain.OrgTypeOther)

		expected := 300000.0 + 60000.0*5 + 200000.0 + 150000.0
		assert.Equal(t, expected, result.Expenses)
	})

	t.Run("Margem retorna o valor bruto, sem arredondamento", func(t *testing.T) {
		result := service.Run(baseInputs, domain.OrgTypeOther)

		assert.Equal(t, 100*-650100.0/299900.0, result.ProfitMargin)
	})
}

func TestService_ContextFrom(t *testing.T) {
	service := NewService()
	result := service.Run(baseInputs, domain.OrgTypeOther)

	t.Run("Sem foto persistida usa a projeção como base e crescimento zero", func(t *testing.T) {
		fc := service.ContextFrom(baseInputs, result, nil)

		assert.Equal(t, result.Revenue, fc.CurrentRevenue)
		assert.Equal(t, result.Revenue, fc.ProjectedRevenue)
		assert.Equal(t, result.Expenses, fc.Expenses)
		assert.Equal(t, 0.0, fc.GrowthRate)
		assert.Equal(t, 12, fc.TimeHorizon)
		assert.Equal(t, result.NetProfit, fc.CashFlow)
		assert.Equal(t, result.ProfitMargin, fc.ProfitMargin)
	})

	t.Run("Com foto persistida deriva a taxa de crescimento", func(t *testing.T) {
		snapshot := &domain.FinancialSnapshot{MonthlyRevenue: 250000}

		fc := service.ContextFrom(baseInputs, result, snapshot)

		assert.Equal(t, 250000.0, fc.CurrentRevenue)
		assert.InDelta(t, 19.96, fc.GrowthRate, 0.01)
	})
}
