package analyzing

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockFinancialDataRepository, *mocks.MockTransactionRepository, *mocks.MockSimulationRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockFinancialRepo := mocks.NewMockFinancialDataRepository(ctrl)
	mockTxRepo := mocks.NewMockTransactionRepository(ctrl)
	mockSimRepo := mocks.NewMockSimulationRepository(ctrl)

	return NewService(mockFinancialRepo, mockTxRepo, mockSimRepo), mockFinancialRepo, mockTxRepo, mockSimRepo
}

func TestService_Summary(t *testing.T) {
	service, mockFinancialRepo, mockTxRepo, mockSimRepo := newTestService(t)

	snapshot := &domain.FinancialSnapshot{ID: "fd-1", UserID: "user-1", CurrentFunds: 5000000}
	transactions := []*domain.Transaction{
		{ID: "tx-1", Type: domain.TransactionTypeIncome, Amount: 120000},
		{ID: "tx-2", Type: domain.TransactionTypeExpense, Amount: 45000},
		{ID: "tx-3", Type: domain.TransactionTypeWithdrawal, Amount: 5000},
		{ID: "tx-4", Type: domain.TransactionTypeInvestment, Amount: 30000},
	}

	mockFinancialRepo.EXPECT().GetLatestByUser("user-1").Return(snapshot, nil)
	mockTxRepo.EXPECT().ListByUser("user-1", uint64(10)).Return(transactions, nil)
	mockSimRepo.EXPECT().CountByUser("user-1").Return(3, nil)

	service.RecordSimulation("user-1")
	service.RecordSimulation("user-1")
	service.RecordExport("user-1")

	summary, err := service.Summary("user-1")

	require.NoError(t, err)
	assert.Same(t, snapshot, summary.FinancialData)
	assert.Len(t, summary.RecentTransactions, 4)
	assert.Equal(t, 3, summary.SimulationCount)

	// Só entradas e saídas entram no resumo; investimentos e retiradas
	// ficam de fora
	assert.Equal(t, 120000.0, summary.CashFlowSummary.TotalIncome)
	assert.Equal(t, 45000.0, summary.CashFlowSummary.TotalExpenses)
	assert.Equal(t, 75000.0, summary.CashFlowSummary.NetCashFlow)

	assert.Equal(t, 2, summary.UsageStats.Simulations)
	assert.Equal(t, 1, summary.UsageStats.Exports)
}

func TestService_Summary_WithoutSnapshot(t *testing.T) {
	service, mockFinancialRepo, mockTxRepo, mockSimRepo := newTestService(t)

	mockFinancialRepo.EXPECT().GetLatestByUser("user-1").Return(nil, nil)
	mockTxRepo.EXPECT().ListByUser("user-1", uint64(10)).Return(nil, nil)
	mockSimRepo.EXPECT().CountByUser("user-1").Return(0, nil)

	summary, err := service.Summary("user-1")

	require.NoError(t, err)
	assert.Nil(t, summary.FinancialData)
	assert.Empty(t, summary.RecentTransactions)
	assert.Equal(t, domain.CashFlowSummary{}, summary.CashFlowSummary)
}

func TestService_Summary_RepositoryError(t *testing.T) {
	service, mockFinancialRepo, _, _ := newTestService(t)

	mockFinancialRepo.EXPECT().GetLatestByUser("user-1").Return(nil, errors.New("conexão recusada"))

	_, err := service.Summary("user-1")

	assert.Error(t, err)
}

func TestService_UsageCounters(t *testing.T) {
	service, _, _, _ := newTestService(t)

	assert.Equal(t, domain.UsageStats{}, service.Usage("user-1"))

	service.RecordSimulation("user-1")
	service.RecordExport("user-1")
	service.RecordExport("user-1")

	// Contadores são isolados por usuário
	service.RecordSimulation("user-2")

	assert.Equal(t, domain.UsageStats{Simulations: 1, Exports: 2}, service.Usage("user-1"))
	assert.Equal(t, domain.UsageStats{Simulations: 1}, service.Usage("user-2"))
}

func TestService_UsageCounters_Concurrency(t *testing.T) {
	service, _, _, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.RecordSimulation("user-1")
			service.RecordExport("user-1")
		}()
	}
	wg.Wait()

	stats := service.Usage("user-1")
	assert.Equal(t, 50, stats.Simulations)
	assert.Equal(t, 50, stats.Exports)
}
