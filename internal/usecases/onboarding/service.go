package onboarding

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/identity"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

var ErrUserNotFound = errors.New("usuário não encontrado")

// SyncResult descreve o desfecho da sincronização com a base hospedada.
// Falha de persistência não derruba a operação: o perfil derivado das
// claims continua valendo e o resultado registra o que não foi gravado.
type SyncResult struct {
	Synced bool   `json:"synced"`
	Detail string `json:"detail,omitempty"`
}

func syncOK() *SyncResult {
	return &SyncResult{Synced: true}
}

func syncFailed(err error) *SyncResult {
	return &SyncResult{Synced: false, Detail: err.Error()}
}

// Onboarder gerencia o perfil do usuário e o fluxo de onboarding
type Onboarder interface {
	GetOrCreateProfile(claims *domain.Claims) (*domain.UserProfile, *SyncResult)
	UpdateProfile(userID string, req *domain.UpdateProfileRequest) (*domain.UserProfile, error)
	CompleteOnboarding(claims *domain.Claims, data domain.OrganizationData) (*domain.UserProfile, *SyncResult, error)
}

type Service struct {
	userRepo        repository.UserRepository
	identityService identity.Integrator
}

func NewService(userRepo repository.UserRepository, identityService identity.Integrator) Onboarder {
	return &Service{
		userRepo:        userRepo,
		identityService: identityService,
	}
}

// GetOrCreateProfile resolve o perfil do usuário autenticado, criando a
// linha na base hospedada na primeira visita. A operação é idempotente:
// chamadas repetidas devolvem o mesmo perfil sem criar duplicatas.
func (s *Service) GetOrCreateProfile(claims *domain.Claims) (*domain.UserProfile, *SyncResult) {
	existing, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		logrus.WithError(err).Warnf("Erro ao buscar perfil do usuário %s, usando perfil derivado das claims", claims.UserID)
		return s.profileFromClaims(claims), syncFailed(err)
	}

	if existing != nil {
		return existing, syncOK()
	}

	profile := s.profileFromClaims(claims)

	created, err := s.userRepo.Create(profile)
	if err != nil {
		logrus.WithError(err).Warnf("Erro ao criar perfil do usuário %s, usando perfil derivado das claims", claims.UserID)
		return profile, syncFailed(err)
	}

	return created, syncOK()
}

// UpdateProfile aplica uma atualização parcial no perfil persistido
func (s *Service) UpdateProfile(userID string, req *domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	profile, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.CompanyName != nil {
		profile.CompanyName = req.CompanyName
	}
	if req.Industry != nil {
		profile.Industry = req.Industry
	}
	if req.OrganizationType != nil {
		profile.OrganizationType = req.OrganizationType
	}
	if req.TeamSize != nil {
		profile.TeamSize = req.TeamSize
	}

	if err := s.userRepo.Update(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// CompleteOnboarding grava os dados da organização no bag de metadados
// do provedor de identidade e sincroniza o perfil na base hospedada.
// O writeback no provedor é a fonte de verdade do onboarding: se ele
// falhar, a operação falha. A sincronização local é secundária.
func (s *Service) CompleteOnboarding(claims *domain.Claims, data domain.OrganizationData) (*domain.UserProfile, *SyncResult, error) {
	if err := s.identityService.SyncOnboarding(claims.UserID, data); err != nil {
		return nil, nil, err
	}

	profile, sync := s.GetOrCreateProfile(claims)

	profile.CompanyName = &data.CompanyName
	profile.Industry = &data.Industry
	profile.OrganizationType = &data.OrganizationType
	profile.TeamSize = &data.TeamSize

	if sync.Synced {
		if err := s.userRepo.Update(profile); err != nil {
			logrus.WithError(err).Warnf("Erro ao sincronizar onboarding do usuário %s na base hospedada", claims.UserID)
			sync = syncFailed(err)
		}
	}

	return profile, sync, nil
}

func (s *Service) profileFromClaims(claims *domain.Claims) *domain.UserProfile {
	profile := &domain.UserProfile{
		ID:    claims.UserID,
		Email: claims.UserEmail,
	}

	if claims.UserFullName != "" {
		fullName := claims.UserFullName
		profile.FullName = &fullName
	}

	if claims.Organization != nil {
		org := *claims.Organization
		profile.CompanyName = &org.CompanyName
		profile.Industry = &org.Industry
		profile.OrganizationType = &org.OrganizationType
		profile.TeamSize = &org.TeamSize
	}

	return profile
}
