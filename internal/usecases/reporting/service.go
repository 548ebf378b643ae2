package reporting

import (
	"time"

	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// Reporter consolida transações em relatórios mensais e exporta o
// resultado da simulação corrente em PDF
type Reporter interface {
	BuildMonthlyReport(userID string, month, year int) (*domain.MonthlyReport, error)
	SaveMonthlyReport(userID string, month, year int) (*domain.MonthlyReport, error)
	ListReports(userID string) ([]*domain.MonthlyReport, error)
	ExportPDF(req *ExportRequest) ([]byte, error)
}

// ExportRequest carrega a simulação corrente e a série histórica dos
// gráficos a serem exportadas
type ExportRequest struct {
	CompanyName string                   `json:"company_name"`
	OrgType     string                   `json:"organization_type"`
	Inputs      domain.SimulationInputs  `json:"inputs"`
	Results     *domain.FinancialData    `json:"results"`
	Historical  []domain.HistoricalPoint `json:"historical"`
	GeneratedAt time.Time                `json:"generated_at"`
}

type Service struct {
	transactionRepo repository.TransactionRepository
	reportRepo      repository.MonthlyReportRepository
}

func NewService(transactionRepo repository.TransactionRepository, reportRepo repository.MonthlyReportRepository) Reporter {
	return &Service{
		transactionRepo: transactionRepo,
		reportRepo:      reportRepo,
	}
}

// BuildMonthlyReport agrega as transações do mês em um consolidado.
// Receita vem de entradas, despesa de saídas; investimentos e retiradas
// entram só no mapa de fluxo de caixa.
func (s *Service) BuildMonthlyReport(userID string, month, year int) (*domain.MonthlyReport, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	transactions, err := s.transactionRepo.ListByUserBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.MonthlyReport{
		UserID:   userID,
		Month:    month,
		Year:     year,
		CashFlow: make(map[string]float64),
	}

	for _, tx := range transactions {
		report.CashFlow[tx.Type] += tx.Amount

		switch tx.Type {
		case domain.TransactionTypeIncome:
			report.TotalRevenue += tx.Amount
		case domain.TransactionTypeExpense:
			report.TotalExpenses += tx.Amount
		}
	}

	report.NetProfit = report.TotalRevenue - report.TotalExpenses

	return report, nil
}

// SaveMonthlyReport materializa o consolidado do mês na base hospedada.
// Idempotente: se o relatório do mês já existe, ele é retornado sem
// gerar uma segunda linha.
func (s *Service) SaveMonthlyReport(userID string, month, year int) (*domain.MonthlyReport, error) {
	existing, err := s.reportRepo.GetByUserMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	report, err := s.BuildMonthlyReport(userID, month, year)
	if err != nil {
		return nil, err
	}

	return s.reportRepo.Insert(report)
}

func (s *Service) ListReports(userID string) ([]*domain.MonthlyReport, error) {
	return s.reportRepo.ListByUser(userID)
}
