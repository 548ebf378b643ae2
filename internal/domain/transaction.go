package domain

import "time"

// Tipos de transação aceitos pela base
const (
	TransactionTypeIncome     = "income"
	TransactionTypeExpense    = "expense"
	TransactionTypeInvestment = "investment"
	TransactionTypeWithdrawal = "withdrawal"
)

// Transaction é uma movimentação financeira registrada pelo usuário
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidTransactionType valida o tipo de transação recebido na API
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeInvestment, TransactionTypeWithdrawal:
		return true
	}
	return false
}

// UpdateTransactionRequest é o payload de atualização parcial de transação
type UpdateTransactionRequest struct {
	Type        *string    `json:"type"`
	Amount      *float64   `json:"amount"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Date        *time.Time `json:"date"`
}
