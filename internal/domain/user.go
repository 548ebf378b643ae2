package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserProfile é o perfil do usuário persistido na base hospedada.
// O ID é o identificador opaco emitido pelo provedor de identidade.
type UserProfile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         *string   `json:"full_name,omitempty"`
	CompanyName      *string   `json:"company_name,omitempty"`
	Industry         *string   `json:"industry,omitempty"`
	OrganizationType *string   `json:"organization_type,omitempty"`
	TeamSize         *int      `json:"team_size,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrgType resolve o tipo de organização do perfil, com fallback para "other"
func (u *UserProfile) OrgType() string {
	if u == nil || u.OrganizationType == nil || *u.OrganizationType == "" {
		return OrgTypeOther
	}
	return *u.OrganizationType
}

// OrganizationData são os campos de onboarding guardados no bag de
// metadados do provedor de identidade
type OrganizationData struct {
	CompanyName      string `json:"company_name" mapstructure:"company_name"`
	Industry         string `json:"industry" mapstructure:"industry"`
	OrganizationType string `json:"organization_type" mapstructure:"organization_type"`
	TeamSize         int    `json:"team_size" mapstructure:"team_size"`
}

// UpdateProfileRequest é o payload de atualização parcial do perfil
type UpdateProfileRequest struct {
	FullName         *string `json:"full_name"`
	CompanyName      *string `json:"company_name"`
	Industry         *string `json:"industry"`
	OrganizationType *string `json:"organization_type"`
	TeamSize         *int    `json:"team_size"`
}

// Claims são as claims extraídas do token do provedor de identidade
type Claims struct {
	UserID       string
	UserEmail    string
	UserFullName string
	Organization *OrganizationData
	Onboarded    bool
	jwt.RegisteredClaims
}
