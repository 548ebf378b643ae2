package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
	"github.com/vfg2006/cfo-helper-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// claimsFrom extrai as claims do usuário autenticado do contexto
func claimsFrom(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims, ok
}

// respondJSON serializa o payload com o status informado
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao serializar resposta")
	}
}

// requireClaims escreve o erro padrão quando o contexto não tem claims
func requireClaims(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
	}

	return claims, ok
}
