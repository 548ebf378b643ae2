package analyzing

import (
	"sync"

	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// recentTransactionsLimit limita as transações exibidas no painel
const recentTransactionsLimit = 10

// Analyzer monta o resumo do painel e mantém os contadores de uso da
// sessão (simulações executadas e exportações geradas)
type Analyzer interface {
	Summary(userID string) (*domain.FinancialSummary, error)
	RecordSimulation(userID string)
	RecordExport(userID string)
	Usage(userID string) domain.UsageStats
}

type Service struct {
	financialDataRepo repository.FinancialDataRepository
	transactionRepo   repository.TransactionRepository
	simulationRepo    repository.SimulationRepository

	mu    sync.Mutex
	usage map[string]*domain.UsageStats
}

func NewService(
	financialDataRepo repository.FinancialDataRepository,
	transactionRepo repository.TransactionRepository,
	simulationRepo repository.SimulationRepository,
) *Service {
	return &Service{
		financialDataRepo: financialDataRepo,
		transactionRepo:   transactionRepo,
		simulationRepo:    simulationRepo,
		usage:             make(map[string]*domain.UsageStats),
	}
}

// Summary agrega a última foto financeira, as transações recentes, a
// contagem de simulações salvas e os contadores de uso do usuário
func (s *Service) Summary(userID string) (*domain.FinancialSummary, error) {
	snapshot, err := s.financialDataRepo.GetLatestByUser(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListByUser(userID, recentTransactionsLimit)
	if err != nil {
		return nil, err
	}

	count, err := s.simulationRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &domain.FinancialSummary{
		FinancialData:      snapshot,
		RecentTransactions: transactions,
		SimulationCount:    count,
		CashFlowSummary:    summarizeCashFlow(transactions),
		UsageStats:         s.Usage(userID),
	}, nil
}

func (s *Service) RecordSimulation(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statsFor(userID).Simulations++
}

func (s *Service) RecordExport(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statsFor(userID).Exports++
}

// Usage retorna uma cópia dos contadores do usuário
func (s *Service) Usage(userID string) domain.UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.statsFor(userID)
}

// statsFor resolve os contadores do usuário. Chamar com s.mu em posse.
func (s *Service) statsFor(userID string) *domain.UsageStats {
	stats, ok := s.usage[userID]
	if !ok {
		stats = &domain.UsageStats{}
		s.usage[userID] = stats
	}

	return stats
}

// summarizeCashFlow considera só entradas e saídas; investimentos e
// retiradas ficam fora do resumo do painel
func summarizeCashFlow(transactions []*domain.Transaction) domain.CashFlowSummary {
	var summary domain.CashFlowSummary

	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			summary.TotalIncome += tx.Amount
		case domain.TransactionTypeExpense:
			summary.TotalExpenses += tx.Amount
		}
	}

	summary.NetCashFlow = summary.TotalIncome - summary.TotalExpenses

	return summary
}
