package gemini

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/cfo-helper-api/internal/config"
)

// Integrator expõe a API generativa para os casos de uso
type Integrator interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
	TestConnection(ctx context.Context, model string) bool
}

type Service struct {
	cfg    *config.Config
	client geminiclient.Client
}

func New(cfg *config.Config, client geminiclient.Client) Integrator {
	return &Service{
		cfg:    cfg,
		client: client,
	}
}

func (s *Service) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	return s.client.GenerateText(ctx, model, prompt)
}

// TestConnection faz uma chamada mínima para validar credenciais e modelo
func (s *Service) TestConnection(ctx context.Context, model string) bool {
	_, err := s.client.GenerateText(ctx, model, `Hello, respond with just "OK"`)
	if err != nil {
		logrus.WithError(err).Warnf("Teste de conexão com o modelo %s falhou", model)
		return false
	}
	return true
}
