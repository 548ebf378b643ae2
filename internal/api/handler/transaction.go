package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

// defaultTransactionLimit limita a listagem quando o cliente não informa
const defaultTransactionLimit = 50

type createTransactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Date        string  `json:"date"`
}

// transactionDate interpreta a data enviada pelo cliente no formato
// YYYY-MM-DD. Ausente, vale a data corrente.
func transactionDate(raw string) (time.Time, error) {
	parsed, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}

	if parsed.IsZero() {
		return time.Now(), nil
	}

	return *parsed, nil
}

// ListTransactions retorna as transações do usuário, mais recentes primeiro
func ListTransactions(transactionRepo repository.TransactionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		limit := uint64(defaultTransactionLimit)
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		transactions, err := transactionRepo.ListByUser(claims.UserID, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar transações", nil)
			return
		}

		if transactions == nil {
			transactions = []*domain.Transaction{}
		}

		respondJSON(w, http.StatusOK, transactions)
	}
}

// CreateTransaction registra uma movimentação financeira
func CreateTransaction(transactionRepo repository.TransactionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req createTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if !domain.ValidTransactionType(req.Type) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de transação inválido", nil)
			return
		}

		if req.Amount <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor da transação deve ser positivo", nil)
			return
		}

		date, err := transactionDate(req.Date)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data da transação inválida", nil)
			return
		}

		transaction := &domain.Transaction{
			UserID:      claims.UserID,
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
			Date:        date,
		}

		created, err := transactionRepo.Insert(transaction)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar transação", nil)
			return
		}

		respondJSON(w, http.StatusCreated, created)
	}
}

// UpdateTransaction substitui os campos de uma transação do usuário
func UpdateTransaction(transactionRepo repository.TransactionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		transactionID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if transactionID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da transação não fornecido", nil)
			return
		}

		var req createTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if !domain.ValidTransactionType(req.Type) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de transação inválido", nil)
			return
		}

		if req.Amount <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor da transação deve ser positivo", nil)
			return
		}

		date, err := transactionDate(req.Date)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data da transação inválida", nil)
			return
		}

		transaction := &domain.Transaction{
			ID:          transactionID,
			UserID:      claims.UserID,
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
			Date:        date,
		}

		if err := transactionRepo.Update(transaction); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar transação", nil)
			return
		}

		respondJSON(w, http.StatusOK, transaction)
	}
}

// DeleteTransaction remove uma transação do usuário
func DeleteTransaction(transactionRepo repository.TransactionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		transactionID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if transactionID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da transação não fornecido", nil)
			return
		}

		if err := transactionRepo.Delete(claims.UserID, transactionID); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover transação", nil)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	}
}
