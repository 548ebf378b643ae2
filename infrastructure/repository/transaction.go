package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

const transactionsTable = "transactions"

type TransactionRepository interface {
	ListByUser(userID string, limit uint64) ([]*domain.Transaction, error)
	ListByUserBetween(userID string, start, end time.Time) ([]*domain.Transaction, error)
	Insert(transaction *domain.Transaction) (*domain.Transaction, error)
	Update(transaction *domain.Transaction) error
	Delete(userID, transactionID string) error
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) ListByUser(userID string, limit uint64) ([]*domain.Transaction, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "type", "amount", "description", "category", "date", "created_at").
		From(transactionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	txSQL, txArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTransactions(txSQL, txArgs...)
}

// ListByUserBetween retorna as transações do período [start, end), mais
// recentes primeiro. O intervalo é semiaberto: uma transação datada no
// instante final pertence ao período seguinte.
func (r *transactionRepository) ListByUserBetween(userID string, start, end time.Time) ([]*domain.Transaction, error) {
	txSQL, txArgs, err := listByUserBetweenQuery(userID, start, end)
	if err != nil {
		return nil, err
	}

	return r.queryTransactions(txSQL, txArgs...)
}

func listByUserBetweenQuery(userID string, start, end time.Time) (string, []any, error) {
	return squirrel.
		Select("id", "user_id", "type", "amount", "description", "category", "date", "created_at").
		From(transactionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.Lt{"date": end}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *transactionRepository) queryTransactions(txSQL string, txArgs ...any) ([]*domain.Transaction, error) {
	rows, err := r.conn.Query(txSQL, txArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar transações: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.Type,
			&transaction.Amount,
			&transaction.Description,
			&transaction.Category,
			&transaction.Date,
			&transaction.CreatedAt,
		); err != nil {
			return nil, err
		}

		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepository) Insert(transaction *domain.Transaction) (*domain.Transaction, error) {
	if transaction.ID == "" {
		transaction.ID = utils.MustNewID()
	}

	queryBuilder := squirrel.
		Insert(transactionsTable).
		Columns("id", "user_id", "type", "amount", "description", "category", "date").
		Values(transaction.ID, transaction.UserID, transaction.Type, transaction.Amount, transaction.Description, transaction.Category, transaction.Date).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	txSQL, txArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(txSQL, txArgs...).Scan(&transaction.CreatedAt)
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// Update substitui todas as colunas mutáveis da transação; descrição e
// categoria nulas limpam o que estava gravado
func (r *transactionRepository) Update(transaction *domain.Transaction) error {
	queryBuilder := squirrel.
		Update(transactionsTable).
		Set("type", transaction.Type).
		Set("amount", transaction.Amount).
		Set("description", transaction.Description).
		Set("category", transaction.Category).
		Set("date", transaction.Date).
		Where(squirrel.Eq{"id": transaction.ID, "user_id": transaction.UserID})

	txSQL, txArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(txSQL, txArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar transação: %w", err)
	}

	return nil
}

func (r *transactionRepository) Delete(userID, transactionID string) error {
	queryBuilder := squirrel.
		Delete(transactionsTable).
		Where(squirrel.Eq{"id": transactionID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	txSQL, txArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(txSQL, txArgs...)
	if err != nil {
		return fmt.Errorf("erro ao remover transação: %w", err)
	}

	return nil
}
