package geminiclient

import (
	"context"
	"fmt"

	"github.com/vfg2006/cfo-helper-api/internal/config"
	"google.golang.org/genai"
)

// Client é a fronteira com a API de geração de texto.
// Uma chamada por turno do consultor, parametrizada pelo modelo escolhido
// na lista de fallback.
type Client interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	cfg    config.Gemini
}

func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}

	return &GeminiClient{
		client: client,
		cfg:    cfg.Gemini,
	}, nil
}

// GenerateText envia o prompt ao modelo informado e retorna o texto da resposta
func (c *GeminiClient) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx,
		model,
		genai.Text(prompt),
		c.generationConfig(),
	)
	if err != nil {
		return "", fmt.Errorf("erro na geração com o modelo %s: %w", model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("modelo %s retornou resposta vazia", model)
	}

	return text, nil
}

// generationConfig monta os parâmetros de geração e os limiares de
// segurança (assédio e discurso de ódio bloqueados a partir de "medium")
func (c *GeminiClient) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.cfg.Temperature)),
		TopK:            genai.Ptr(float32(c.cfg.TopK)),
		TopP:            genai.Ptr(float32(c.cfg.TopP)),
		MaxOutputTokens: int32(c.cfg.MaxOutputTokens),
		SafetySettings: []*genai.SafetySetting{
			{
				Category:  genai.HarmCategoryHarassment,
				Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
			},
			{
				Category:  genai.HarmCategoryHateSpeech,
				Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
			},
		},
	}
}
