package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

const financialDataTable = "financial_data"

type FinancialDataRepository interface {
	GetLatestByUser(userID string) (*domain.FinancialSnapshot, error)
	Insert(snapshot *domain.FinancialSnapshot) (*domain.FinancialSnapshot, error)
	Update(snapshot *domain.FinancialSnapshot) error
}

type financialDataRepository struct {
	conn *postgres.Connection
}

func NewFinancialDataRepository(conn *postgres.Connection) FinancialDataRepository {
	return &financialDataRepository{
		conn: conn,
	}
}

// GetLatestByUser retorna a foto financeira mais recente do usuário,
// ou nil quando ainda não existe nenhuma
func (r *financialDataRepository) GetLatestByUser(userID string) (*domain.FinancialSnapshot, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "current_funds", "monthly_revenue", "monthly_expenses", "employees", "marketing_spend", "product_price", "misc_expenses", "created_at", "updated_at").
		From(financialDataTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	dataSQL, dataArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var snapshot domain.FinancialSnapshot
	err = r.conn.QueryRow(dataSQL, dataArgs...).Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.CurrentFunds,
		&snapshot.MonthlyRevenue,
		&snapshot.MonthlyExpenses,
		&snapshot.Employees,
		&snapshot.MarketingSpend,
		&snapshot.ProductPrice,
		&snapshot.MiscExpenses,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *financialDataRepository) Insert(snapshot *domain.FinancialSnapshot) (*domain.FinancialSnapshot, error) {
	if snapshot.ID == "" {
		snapshot.ID = utils.MustNewID()
	}

	queryBuilder := squirrel.
		Insert(financialDataTable).
		Columns("id", "user_id", "current_funds", "monthly_revenue", "monthly_expenses", "employees", "marketing_spend", "product_price", "misc_expenses").
		Values(snapshot.ID, snapshot.UserID, snapshot.CurrentFunds, snapshot.MonthlyRevenue, snapshot.MonthlyExpenses, snapshot.Employees, snapshot.MarketingSpend, snapshot.ProductPrice, snapshot.MiscExpenses).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	dataSQL, dataArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(dataSQL, dataArgs...).Scan(&snapshot.CreatedAt, &snapshot.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *financialDataRepository) Update(snapshot *domain.FinancialSnapshot) error {
	queryBuilder := squirrel.
		Update(financialDataTable).
		Set("current_funds", snapshot.CurrentFunds).
		Set("monthly_revenue", snapshot.MonthlyRevenue).
		Set("monthly_expenses", snapshot.MonthlyExpenses).
		Set("employees", snapshot.Employees).
		Set("marketing_spend", snapshot.MarketingSpend).
		Set("product_price", snapshot.ProductPrice).
		Set("misc_expenses", snapshot.MiscExpenses).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": snapshot.ID}).
		PlaceholderFormat(squirrel.Dollar)

	dataSQL, dataArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(dataSQL, dataArgs...)
	if err != nil {
		return err
	}

	return nil
}
