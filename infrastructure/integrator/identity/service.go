package identity

import (
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/identity/identityclient"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// Integrator expõe as operações do provedor de identidade usadas pelo core:
// leitura do usuário autenticado e writeback do bag de metadados
type Integrator interface {
	FetchUser(userID string) (*identityclient.ProviderUser, error)
	SyncOnboarding(userID string, data domain.OrganizationData) error
}

type Service struct {
	cfg    *config.Config
	client identityclient.Client
}

func New(cfg *config.Config, client identityclient.Client) Integrator {
	return &Service{
		cfg:    cfg,
		client: client,
	}
}

func (s *Service) FetchUser(userID string) (*identityclient.ProviderUser, error) {
	return s.client.GetUser(userID)
}

// SyncOnboarding grava os campos de organização e a conclusão do
// onboarding no bag de metadados do provedor
func (s *Service) SyncOnboarding(userID string, data domain.OrganizationData) error {
	return s.client.UpdateUserMetadata(userID, map[string]any{
		"onboarding_complete": true,
		"organization_data": map[string]any{
			"company_name":      data.CompanyName,
			"industry":          data.Industry,
			"organization_type": data.OrganizationType,
			"team_size":         data.TeamSize,
		},
	})
}
