package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/advising"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

// defaultChatSession agrupa o histórico quando o cliente não nomeia a sessão
const defaultChatSession = "default"

type advisorMessageRequest struct {
	Message          string                   `json:"message"`
	SessionID        string                   `json:"session_id"`
	FinancialContext *domain.FinancialContext `json:"financial_context"`
}

type advisorInsightsRequest struct {
	FinancialContext domain.FinancialContext `json:"financial_context"`
}

type advisorInsightsResponse struct {
	Insights string `json:"insights"`
}

// writeAdvisorError traduz os erros de validação e rate-gate do consultor
func writeAdvisorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, advising.ErrEmptyMessage):
		apiErrors.WriteError(w, apiErrors.ErrEmptyMessage, "Escreva uma mensagem para o consultor", nil)
	case errors.Is(err, advising.ErrMessageTooLong):
		apiErrors.WriteError(w, apiErrors.ErrMessageTooLong, "Mensagem excede o tamanho máximo", nil)
	case errors.Is(err, advising.ErrRateLimited):
		apiErrors.WriteError(w, apiErrors.ErrRateLimited, "Aguarde um instante antes de enviar outra mensagem", nil)
	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro no consultor de IA", nil)
	}
}

// SendAdvisorMessage conversa com o consultor de IA
func SendAdvisorMessage(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req advisorMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = defaultChatSession
		}

		reply, err := service.SendMessage(r.Context(), claims.UserID, sessionID, req.Message, req.FinancialContext)
		if err != nil {
			writeAdvisorError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, reply)
	}
}

// GetAdvisorInsights gera a análise proativa do painel
func GetAdvisorInsights(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req advisorInsightsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		insights, err := service.GenerateInsights(r.Context(), claims.UserID, req.FinancialContext)
		if err != nil {
			writeAdvisorError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, advisorInsightsResponse{Insights: insights})
	}
}

// GetAdvisorHistory retorna a conversa corrente mantida em memória
func GetAdvisorHistory(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		history := service.History(claims.UserID)
		if history == nil {
			history = []domain.ChatMessage{}
		}

		respondJSON(w, http.StatusOK, history)
	}
}

// ClearAdvisorHistory zera a conversa corrente
func ClearAdvisorHistory(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		service.ClearHistory(claims.UserID)

		respondJSON(w, http.StatusNoContent, nil)
	}
}

// GetPersistedChatHistory retorna o histórico de uma sessão gravado na
// base hospedada
func GetPersistedChatHistory(chatRepo repository.ChatHistoryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			sessionID = defaultChatSession
		}

		records, err := chatRepo.ListBySession(claims.UserID, sessionID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico de chat", nil)
			return
		}

		if records == nil {
			records = []*domain.ChatHistoryRecord{}
		}

		respondJSON(w, http.StatusOK, records)
	}
}
