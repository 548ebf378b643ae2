package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/onboarding"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

// profileResponse devolve o perfil e o desfecho da sincronização com a
// base hospedada
type profileResponse struct {
	Profile *domain.UserProfile    `json:"profile"`
	Sync    *onboarding.SyncResult `json:"sync"`
}

// GetMe resolve o perfil do usuário autenticado, criando a linha na
// primeira visita
func GetMe(service onboarding.Onboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		profile, sync := service.GetOrCreateProfile(claims)

		respondJSON(w, http.StatusOK, profileResponse{Profile: profile, Sync: sync})
	}
}

// UpdateMe aplica uma atualização parcial no perfil do usuário autenticado
func UpdateMe(service onboarding.Onboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		profile, err := service.UpdateProfile(claims.UserID, &req)
		if err != nil {
			if errors.Is(err, onboarding.ErrUserNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar perfil", nil)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// CompleteOnboarding grava os dados da organização no provedor de
// identidade e sincroniza o perfil local
func CompleteOnboarding(service onboarding.Onboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var data domain.OrganizationData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if data.CompanyName == "" || data.OrganizationType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da empresa e tipo de organização são obrigatórios", nil)
			return
		}

		profile, sync, err := service.CompleteOnboarding(claims, data)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gravar onboarding no provedor de identidade", nil)
			return
		}

		respondJSON(w, http.StatusOK, profileResponse{Profile: profile, Sync: sync})
	}
}
