package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

const monthlyReportsTable = "monthly_reports"

type MonthlyReportRepository interface {
	ListByUser(userID string) ([]*domain.MonthlyReport, error)
	GetByUserMonth(userID string, month, year int) (*domain.MonthlyReport, error)
	Insert(report *domain.MonthlyReport) (*domain.MonthlyReport, error)
	ListUserIDsWithTransactions(month, year int) ([]string, error)
}

type monthlyReportRepository struct {
	conn *postgres.Connection
}

func NewMonthlyReportRepository(conn *postgres.Connection) MonthlyReportRepository {
	return &monthlyReportRepository{
		conn: conn,
	}
}

func (r *monthlyReportRepository) ListByUser(userID string) ([]*domain.MonthlyReport, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "month", "year", "total_revenue", "total_expenses", "net_profit", "cash_flow", "created_at").
		From(monthlyReportsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("year DESC", "month DESC").
		PlaceholderFormat(squirrel.Dollar)

	reportSQL, reportArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(reportSQL, reportArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar relatórios mensais: %w", err)
	}
	defer rows.Close()

	var reports []*domain.MonthlyReport
	for rows.Next() {
		report, err := scanMonthlyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *monthlyReportRepository) GetByUserMonth(userID string, month, year int) (*domain.MonthlyReport, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "month", "year", "total_revenue", "total_expenses", "net_profit", "cash_flow", "created_at").
		From(monthlyReportsTable).
		Where(squirrel.Eq{"user_id": userID, "month": month, "year": year}).
		PlaceholderFormat(squirrel.Dollar)

	reportSQL, reportArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var report domain.MonthlyReport
	var cashFlowRaw []byte
	err = r.conn.QueryRow(reportSQL, reportArgs...).Scan(
		&report.ID,
		&report.UserID,
		&report.Month,
		&report.Year,
		&report.TotalRevenue,
		&report.TotalExpenses,
		&report.NetProfit,
		&cashFlowRaw,
		&report.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(cashFlowRaw) > 0 {
		if err := json.Unmarshal(cashFlowRaw, &report.CashFlow); err != nil {
			return nil, fmt.Errorf("erro ao decodificar cash_flow do relatório %s: %w", report.ID, err)
		}
	}

	return &report, nil
}

func (r *monthlyReportRepository) Insert(report *domain.MonthlyReport) (*domain.MonthlyReport, error) {
	if report.ID == "" {
		report.ID = utils.MustNewID()
	}

	var cashFlowRaw []byte
	if report.CashFlow != nil {
		raw, err := json.Marshal(report.CashFlow)
		if err != nil {
			return nil, fmt.Errorf("erro ao codificar cash_flow do relatório: %w", err)
		}
		cashFlowRaw = raw
	}

	queryBuilder := squirrel.
		Insert(monthlyReportsTable).
		Columns("id", "user_id", "month", "year", "total_revenue", "total_expenses", "net_profit", "cash_flow").
		Values(report.ID, report.UserID, report.Month, report.Year, report.TotalRevenue, report.TotalExpenses, report.NetProfit, cashFlowRaw).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	reportSQL, reportArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(reportSQL, reportArgs...).Scan(&report.CreatedAt)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// ListUserIDsWithTransactions lista os usuários com movimentação no mês,
// candidatos a receber o consolidado mensal
func (r *monthlyReportRepository) ListUserIDsWithTransactions(month, year int) ([]string, error) {
	queryBuilder := squirrel.
		Select("DISTINCT user_id").
		From(transactionsTable).
		Where(squirrel.Expr("EXTRACT(MONTH FROM date) = ?", month)).
		Where(squirrel.Expr("EXTRACT(YEAR FROM date) = ?", year)).
		PlaceholderFormat(squirrel.Dollar)

	idsSQL, idsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(idsSQL, idsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar usuários com transações: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return userIDs, nil
}

func scanMonthlyReport(rows *sql.Rows) (*domain.MonthlyReport, error) {
	var report domain.MonthlyReport
	var cashFlowRaw []byte

	if err := rows.Scan(
		&report.ID,
		&report.UserID,
		&report.Month,
		&report.Year,
		&report.TotalRevenue,
		&report.TotalExpenses,
		&report.NetProfit,
		&cashFlowRaw,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(cashFlowRaw) > 0 {
		if err := json.Unmarshal(cashFlowRaw, &report.CashFlow); err != nil {
			return nil, fmt.Errorf("erro ao decodificar cash_flow do relatório %s: %w", report.ID, err)
		}
	}

	return &report, nil
}
