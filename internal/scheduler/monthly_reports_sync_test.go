package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/reporting"
	"go.uber.org/mock/gomock"
)

func newReportSyncService(t *testing.T) (*MonthlyReportSyncService, *mocks.MockMonthlyReportRepository, *mocks.MockTransactionRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockReportRepo := mocks.NewMockMonthlyReportRepository(ctrl)
	mockTxRepo := mocks.NewMockTransactionRepository(ctrl)

	reporter := reporting.NewService(mockTxRepo, mockReportRepo)

	service := NewMonthlyReportSyncService(mockReportRepo, reporter, &config.Config{
		MonthlyReportSync: config.MonthlyReportSync{
			CronSchedule:  "0 5 1 * *",
			MonthLookback: 1,
			Enabled:       true,
		},
	})
	service.now = func() time.Time {
		return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	}

	return service, mockReportRepo, mockTxRepo
}

func TestMonthlyReportSyncService_TargetMonth(t *testing.T) {
	service, _, _ := newReportSyncService(t)

	// Rodando em agosto com lookback 1, consolida julho
	month, year := service.targetMonth()

	assert.Equal(t, 7, month)
	assert.Equal(t, 2026, year)
}

func TestMonthlyReportSyncService_Sync(t *testing.T) {
	service, mockReportRepo, mockTxRepo := newReportSyncService(t)

	mockReportRepo.EXPECT().
		ListUserIDsWithTransactions(7, 2026).
		Return([]string{"user-1", "user-2"}, nil)

	// user-1: mês ainda não consolidado
	mockReportRepo.EXPECT().GetByUserMonth("user-1", 7, 2026).Return(nil, nil)
	mockTxRepo.EXPECT().
		ListByUserBetween("user-1", gomock.Any(), gomock.Any()).
		Return([]*domain.Transaction{
			{Type: domain.TransactionTypeIncome, Amount: 5000},
		}, nil)
	mockReportRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(r *domain.MonthlyReport) (*domain.MonthlyReport, error) {
			assert.Equal(t, "user-1", r.UserID)
			assert.Equal(t, 5000.0, r.TotalRevenue)
			return r, nil
		})

	// user-2: relatório já existe, nada a inserir
	mockReportRepo.EXPECT().
		GetByUserMonth("user-2", 7, 2026).
		Return(&domain.MonthlyReport{ID: "rep-2"}, nil)

	service.syncMonthlyReports()
}

func TestMonthlyReportSyncService_Sync_PartialFailure(t *testing.T) {
	service, mockReportRepo, mockTxRepo := newReportSyncService(t)

	mockReportRepo.EXPECT().
		ListUserIDsWithTransactions(7, 2026).
		Return([]string{"user-1", "user-2"}, nil)

	// user-1 falha, user-2 segue sendo consolidado
	mockReportRepo.EXPECT().
		GetByUserMonth("user-1", 7, 2026).
		Return(nil, errors.New("conexão recusada"))

	mockReportRepo.EXPECT().GetByUserMonth("user-2", 7, 2026).Return(nil, nil)
	mockTxRepo.EXPECT().
		ListByUserBetween("user-2", gomock.Any(), gomock.Any()).
		Return(nil, nil)
	mockReportRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(r *domain.MonthlyReport) (*domain.MonthlyReport, error) {
			return r, nil
		})

	service.syncMonthlyReports()
}

func TestMonthlyReportSyncService_Sync_ListFailure(t *testing.T) {
	service, mockReportRepo, _ := newReportSyncService(t)

	mockReportRepo.EXPECT().
		ListUserIDsWithTransactions(7, 2026).
		Return(nil, errors.New("conexão recusada"))

	// Sem pânico e sem consolidação
	service.syncMonthlyReports()
}
