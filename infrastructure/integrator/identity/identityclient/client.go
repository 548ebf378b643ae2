package identityclient

import (
	"net/http"
	"time"

	"github.com/vfg2006/cfo-helper-api/internal/config"
)

// ProviderUser é a representação do usuário no provedor de identidade:
// id opaco, nome, email e o bag livre de metadados usado pelo onboarding
type ProviderUser struct {
	ID             string         `json:"id"`
	Email          string         `json:"email_address"`
	FullName       string         `json:"full_name"`
	UnsafeMetadata map[string]any `json:"unsafe_metadata"`
}

type Client interface {
	GetUser(userID string) (*ProviderUser, error)
	UpdateUserMetadata(userID string, metadata map[string]any) error
}

type IdentityClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &IdentityClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
