package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func tx(txType string, amount float64, day int) *domain.Transaction {
	return &domain.Transaction{
		ID:     "tx-" + txType,
		UserID: "user-1",
		Type:   txType,
		Amount: amount,
		Date:   time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_BuildMonthlyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
	mockReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)
	service := NewService(mockTxRepo, mockReportRepo)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	mockTxRepo.EXPECT().
		ListByUserBetween("user-1", start, end).
		Return([]*domain.Transaction{
			tx(domain.TransactionTypeIncome, 120000, 3),
			tx(domain.TransactionTypeIncome, 80000, 15),
			tx(domain.TransactionTypeExpense, 50000, 10),
			tx(domain.TransactionTypeInvestment, 30000, 20),
			tx(domain.TransactionTypeWithdrawal, 10000, 25),
		}, nil)

	report, err := service.BuildMonthlyReport("user-1", 7, 2026)

	require.NoError(t, err)
	assert.Equal(t, 7, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, 200000.0, report.TotalRevenue)
	assert.Equal(t, 50000.0, report.TotalExpenses)
	assert.Equal(t, 150000.0, report.NetProfit)

	// Investimentos e retiradas ficam só no mapa de fluxo de caixa
	assert.Equal(t, 200000.0, report.CashFlow[domain.TransactionTypeIncome])
	assert.Equal(t, 50000.0, report.CashFlow[domain.TransactionTypeExpense])
	assert.Equal(t, 30000.0, report.CashFlow[domain.TransactionTypeInvestment])
	assert.Equal(t, 10000.0, report.CashFlow[domain.TransactionTypeWithdrawal])
}

func TestService_BuildMonthlyReport_EmptyMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
	mockReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)
	service := NewService(mockTxRepo, mockReportRepo)

	mockTxRepo.EXPECT().
		ListByUserBetween("user-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	report, err := service.BuildMonthlyReport("user-1", 2, 2026)

	require.NoError(t, err)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, 0.0, report.TotalExpenses)
	assert.Equal(t, 0.0, report.NetProfit)
}

func TestService_SaveMonthlyReport(t *testing.T) {
	t.Run("Relatório existente é retornado sem gerar duplicata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
		mockReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)
		service := NewService(mockTxRepo, mockReportRepo)

		existing := &domain.MonthlyReport{ID: "rep-1", UserID: "user-1", Month: 7, Year: 2026}
		mockReportRepo.EXPECT().GetByUserMonth("user-1", 7, 2026).Return(existing, nil)

		report, err := service.SaveMonthlyReport("user-1", 7, 2026)

		require.NoError(t, err)
		assert.Same(t, existing, report)
	})

	t.Run("Novo mês agrega e insere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
		mockReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)
		service := NewService(mockTxRepo, mockReportRepo)

		mockReportRepo.EXPECT().GetByUserMonth("user-1", 7, 2026).Return(nil, nil)
		mockTxRepo.EXPECT().
			ListByUserBetween("user-1", gomock.Any(), gomock.Any()).
			Return([]*domain.Transaction{tx(domain.TransactionTypeIncome, 1000, 1)}, nil)
		mockReportRepo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(r *domain.MonthlyReport) (*domain.MonthlyReport, error) {
				assert.Equal(t, 1000.0, r.TotalRevenue)
				return r, nil
			})

		report, err := service.SaveMonthlyReport("user-1", 7, 2026)

		require.NoError(t, err)
		assert.Equal(t, 1000.0, report.TotalRevenue)
	})

	t.Run("Falha na consulta propaga o erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
		mockReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)
		service := NewService(mockTxRepo, mockReportRepo)

		mockReportRepo.EXPECT().GetByUserMonth("user-1", 7, 2026).Return(nil, errors.New("conexão recusada"))

		_, err := service.SaveMonthlyReport("user-1", 7, 2026)

		assert.Error(t, err)
	})
}

func TestService_ExportPDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewService(mocks.NewMockTransactionRepository(ctrl), mocks.NewMockMonthlyReportRepository(ctrl))

	t.Run("Sem resultado corrente retorna erro", func(t *testing.T) {
		_, err := service.ExportPDF(&ExportRequest{})
		assert.ErrorIs(t, err, ErrNoResultToExport)

		_, err = service.ExportPDF(nil)
		assert.ErrorIs(t, err, ErrNoResultToExport)
	})

	t.Run("Simulação corrente vira um PDF válido", func(t *testing.T) {
		req := &ExportRequest{
			CompanyName: "Acme Labs",
			OrgType:     domain.OrgTypeStartup,
			Inputs: domain.SimulationInputs{
				Employees:      5,
				MarketingSpend: 200000,
				ProductPrice:   2999,
				MiscExpenses:   150000,
				CurrentFunds:   5000000,
				CustomParameters: []domain.CustomParameter{
					{Label: "Consultoria", Value: 50000, Category: domain.ParameterCategoryIncome},
				},
			},
			Results: &domain.FinancialData{
				Revenue:      431856,
				Expenses:     1000000,
				NetProfit:    -568144,
				Runway:       5,
				ProfitMargin: -131.56,
			},
			GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		}

		raw, err := service.ExportPDF(req)

		require.NoError(t, err)
		require.NotEmpty(t, raw)
		// Cabeçalho padrão de arquivos PDF
		assert.Equal(t, "%PDF", string(raw[:4]))
	})

	t.Run("Série histórica entra no relatório", func(t *testing.T) {
		base := &ExportRequest{
			Results:     &domain.FinancialData{Revenue: 1000, Runway: 5},
			GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		}

		withoutSeries, err := service.ExportPDF(base)
		require.NoError(t, err)

		withSeries := *base
		withSeries.Historical = []domain.HistoricalPoint{
			{Month: "Jan", Revenue: 1250000, Expenses: 875000},
			{Month: "Feb", Revenue: 1300000, Expenses: 900000},
		}

		raw, err := service.ExportPDF(&withSeries)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(raw[:4]))
		assert.Greater(t, len(raw), len(withoutSeries))
	})

	t.Run("Runway ilimitado é exportado sem número", func(t *testing.T) {
		req := &ExportRequest{
			Results: &domain.FinancialData{
				Revenue: 1000,
				Runway:  domain.RunwayUnbounded,
			},
			GeneratedAt: time.Now(),
		}

		raw, err := service.ExportPDF(req)

		require.NoError(t, err)
		require.NotEmpty(t, raw)
	})
}
