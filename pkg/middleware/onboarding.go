package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

// RequireClaims garante que as claims do usuário estejam no contexto.
// Usado nas rotas que dependem do id opaco do usuário.
func RequireClaims() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOnboarding restringe rotas que só fazem sentido depois do
// onboarding concluído (simulações, consultor, relatórios)
func RequireOnboarding() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !claims.Onboarded {
				logrus.Warningf("Acesso negado para usuário %s: onboarding pendente", claims.UserID)
				apiErrors.WriteError(w, apiErrors.ErrOnboardingNeeded, "Conclua o onboarding para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
