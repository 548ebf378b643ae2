package identifying

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

const testSecret = "segredo-de-teste"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func newTestService() Identifier {
	return NewService(&config.Config{
		Identity: config.Identity{SecretKey: testSecret},
	})
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService()

	t.Run("Token válido com metadados de onboarding", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub":       "user_2abc",
			"email":     "founder@example.com",
			"full_name": "Jordan Founder",
			"exp":       time.Now().Add(time.Hour).Unix(),
			"unsafe_metadata": map[string]any{
				"onboarding_complete": true,
				"organization_data": map[string]any{
					"company_name":      "Acme Labs",
					"industry":          "saas",
					"organization_type": "startup",
					"team_size":         8,
				},
			},
		})

		claims, err := service.ValidateToken(tokenString)

		require.NoError(t, err)
		assert.Equal(t, "user_2abc", claims.UserID)
		assert.Equal(t, "founder@example.com", claims.UserEmail)
		assert.Equal(t, "Jordan Founder", claims.UserFullName)
		assert.True(t, claims.Onboarded)
		require.NotNil(t, claims.Organization)
		assert.Equal(t, "Acme Labs", claims.Organization.CompanyName)
		assert.Equal(t, domain.OrgTypeStartup, claims.Organization.OrganizationType)
		assert.Equal(t, 8, claims.Organization.TeamSize)
	})

	t.Run("Token válido sem metadados fica como não onboardado", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub":   "user_2def",
			"email": "new@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		claims, err := service.ValidateToken(tokenString)

		require.NoError(t, err)
		assert.False(t, claims.Onboarded)
		assert.Nil(t, claims.Organization)
	})

	t.Run("Token expirado", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user_2abc",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := service.ValidateToken(tokenString)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Assinatura com segredo errado", func(t *testing.T) {
		tokenString := signToken(t, "outro-segredo", jwt.MapClaims{
			"sub": "user_2abc",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := service.ValidateToken(tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nem-um-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token sem subject", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"email": "ghost@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		_, err := service.ValidateToken(tokenString)

		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("Metadados de organização malformados não invalidam o token", func(t *testing.T) {
		tokenString := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user_2ghi",
			"exp": time.Now().Add(time.Hour).Unix(),
			"unsafe_metadata": map[string]any{
				"onboarding_complete": true,
				"organization_data":   "corrompido",
			},
		})

		claims, err := service.ValidateToken(tokenString)

		require.NoError(t, err)
		assert.True(t, claims.Onboarded)
		assert.Nil(t, claims.Organization)
	})
}
