package identifying

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// Identifier valida o token de sessão emitido pelo provedor de
// identidade e extrai as claims usadas pelo restante da API
type Identifier interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// providerClaims é o formato bruto das claims no token do provedor.
// Os campos de organização e onboarding vivem no bag de metadados.
type providerClaims struct {
	Email          string         `json:"email"`
	FullName       string         `json:"full_name"`
	UnsafeMetadata map[string]any `json:"unsafe_metadata"`
	jwt.RegisteredClaims
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Identifier {
	return &Service{cfg: cfg}
}

// ValidateToken verifica assinatura e expiração do token e mapeia as
// claims do provedor para o formato interno
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &providerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Identity.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return s.mapClaims(claims), nil
}

// mapClaims converte as claims brutas, decodificando o bag de metadados
// de onboarding quando presente. Metadados malformados não invalidam o
// token: o usuário só é tratado como não onboardado.
func (s *Service) mapClaims(claims *providerClaims) *domain.Claims {
	mapped := &domain.Claims{
		UserID:           claims.Subject,
		UserEmail:        claims.Email,
		UserFullName:     claims.FullName,
		RegisteredClaims: claims.RegisteredClaims,
	}

	if claims.UnsafeMetadata == nil {
		return mapped
	}

	if onboarded, ok := claims.UnsafeMetadata["onboarding_complete"].(bool); ok {
		mapped.Onboarded = onboarded
	}

	if rawOrg, ok := claims.UnsafeMetadata["organization_data"]; ok {
		var org domain.OrganizationData
		if err := mapstructure.Decode(rawOrg, &org); err != nil {
			logrus.WithError(err).Warnf("Metadados de organização malformados para o usuário %s", claims.Subject)
			return mapped
		}
		mapped.Organization = &org
	}

	return mapped
}
