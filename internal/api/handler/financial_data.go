package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

type upsertFinancialDataRequest struct {
	CurrentFunds    float64 `json:"current_funds"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	Employees       int     `json:"employees"`
	MarketingSpend  float64 `json:"marketing_spend"`
	ProductPrice    float64 `json:"product_price"`
	MiscExpenses    float64 `json:"misc_expenses"`
}

// GetFinancialData retorna a última foto financeira persistida do usuário
func GetFinancialData(financialDataRepo repository.FinancialDataRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		snapshot, err := financialDataRepo.GetLatestByUser(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar dados financeiros", nil)
			return
		}

		if snapshot == nil {
			respondJSON(w, http.StatusOK, nil)
			return
		}

		respondJSON(w, http.StatusOK, snapshot)
	}
}

// UpsertFinancialData grava a foto financeira do usuário, atualizando a
// existente ou criando a primeira
func UpsertFinancialData(financialDataRepo repository.FinancialDataRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req upsertFinancialDataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		existing, err := financialDataRepo.GetLatestByUser(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar dados financeiros", nil)
			return
		}

		snapshot := &domain.FinancialSnapshot{
			UserID:          claims.UserID,
			CurrentFunds:    req.CurrentFunds,
			MonthlyRevenue:  req.MonthlyRevenue,
			MonthlyExpenses: req.MonthlyExpenses,
			Employees:       req.Employees,
			MarketingSpend:  req.MarketingSpend,
			ProductPrice:    req.ProductPrice,
			MiscExpenses:    req.MiscExpenses,
		}

		if existing != nil {
			snapshot.ID = existing.ID
			snapshot.CreatedAt = existing.CreatedAt

			if err := financialDataRepo.Update(snapshot); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar dados financeiros", nil)
				return
			}

			respondJSON(w, http.StatusOK, snapshot)
			return
		}

		created, err := financialDataRepo.Insert(snapshot)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar dados financeiros", nil)
			return
		}

		respondJSON(w, http.StatusCreated, created)
	}
}
