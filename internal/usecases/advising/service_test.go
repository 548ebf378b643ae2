package advising

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geminimocks "github.com/vfg2006/cfo-helper-api/infrastructure/integrator/gemini/mocks"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeClock permite avançar o tempo manualmente nos testes do rate-gate
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func testConfig(models ...string) *config.Config {
	if len(models) == 0 {
		models = []string{"model-a", "model-b", "model-c"}
	}

	return &config.Config{
		Gemini: config.Gemini{
			Models: models,
		},
		Advisor: config.Advisor{
			MaxRequestsPerMinute: 10,
			MinIntervalSeconds:   2,
			HistoryWindow:        5,
			MaxMessageLength:     1000,
		},
	}
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, *geminimocks.MockIntegrator, *mocks.MockChatHistoryRepository, *fakeClock) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockGemini := geminimocks.NewMockIntegrator(ctrl)
	mockChatRepo := mocks.NewMockChatHistoryRepository(ctrl)

	service := NewService(cfg, mockGemini, mockChatRepo)

	clock := &fakeClock{current: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	service.now = clock.now

	return service, mockGemini, mockChatRepo, clock
}

func TestService_SendMessage_Validation(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected error
	}{
		{
			name:     "Mensagem vazia deve retornar erro sem chamar o modelo",
			message:  "",
			expected: ErrEmptyMessage,
		},
		{
			name:     "Mensagem só com espaços deve retornar erro sem chamar o modelo",
			message:  "   \n\t  ",
			expected: ErrEmptyMessage,
		},
		{
			name:     "Mensagem acima do limite deve retornar erro sem chamar o modelo",
			message:  strings.Repeat("a", 1001),
			expected: ErrMessageTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newTestService(t, testConfig())

			_, err := service.SendMessage(context.Background(), "user-1", "sess-1", tt.message, nil)

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_SendMessage_MinInterval(t *testing.T) {
	service, mockGemini, mockChatRepo, clock := newTestService(t, testConfig())

	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(1)
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "How is my runway?", nil)
	require.NoError(t, err)

	// Segunda mensagem 1s depois: dentro do intervalo mínimo de 2s
	clock.advance(time.Second)
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "And my margin?", nil)
	assert.ErrorIs(t, err, ErrRateLimited)

	// Passado o intervalo, volta a aceitar
	clock.advance(2 * time.Second)
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(1)

	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "And my margin?", nil)
	assert.NoError(t, err)
}

func TestService_SendMessage_WindowCap(t *testing.T) {
	cfg := testConfig()
	cfg.Advisor.MaxRequestsPerMinute = 3
	cfg.Advisor.MinIntervalSeconds = 0

	service, mockGemini, mockChatRepo, clock := newTestService(t, cfg)

	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(3)
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()

	for i := 0; i < 3; i++ {
		_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
		require.NoError(t, err)
		clock.advance(5 * time.Second)
	}

	// Quarta requisição dentro da mesma janela de 60s estoura o teto
	_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	assert.ErrorIs(t, err, ErrRateLimited)

	// Depois de 60s sem requisições a janela reinicia
	clock.advance(time.Minute)
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(1)

	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	assert.NoError(t, err)
}

func TestService_SendMessage_WindowResetsOnlyAfterIdlePeriod(t *testing.T) {
	cfg := testConfig()
	cfg.Advisor.MaxRequestsPerMinute = 3

	service, mockGemini, mockChatRepo, clock := newTestService(t, cfg)
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(3)

	// Três mensagens espaçadas dentro do mesmo minuto esgotam o teto
	_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	require.NoError(t, err)

	clock.advance(30 * time.Second)
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	require.NoError(t, err)

	clock.advance(25 * time.Second)
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	require.NoError(t, err)

	// 10s depois da última requisição o contador continua cheio, mesmo
	// já tendo passado mais de 60s desde a primeira
	clock.advance(10 * time.Second)
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	assert.ErrorIs(t, err, ErrRateLimited)

	// Só 60s de silêncio desde a última requisição aceita liberam de novo
	clock.advance(51 * time.Second)
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(1)

	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "message", nil)
	assert.NoError(t, err)
}

func TestService_SendMessage_RateGateRunsBeforeValidation(t *testing.T) {
	service, _, _, clock := newTestService(t, testConfig())

	// A mensagem inválida passa pelo rate-gate e consome o orçamento
	_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "", nil)
	require.ErrorIs(t, err, ErrEmptyMessage)

	clock.advance(time.Second)
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "valid message", nil)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestService_SendMessage_ModelFallback(t *testing.T) {
	service, mockGemini, mockChatRepo, clock := newTestService(t, testConfig())
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()

	// Primeira chamada: model-a falha, model-b responde
	gomock.InOrder(
		mockGemini.EXPECT().
			GenerateText(gomock.Any(), "model-a", gomock.Any()).
			Return("", errors.New("quota exceeded")),
		mockGemini.EXPECT().
			GenerateText(gomock.Any(), "model-b", gomock.Any()).
			Return("resposta do b", nil),
	)

	reply, err := service.SendMessage(context.Background(), "user-1", "sess-1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "resposta do b", reply.Content)

	// Segunda chamada: model-b promovido vai primeiro
	clock.advance(10 * time.Second)
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-b", gomock.Any()).
		Return("de novo o b", nil).
		Times(1)

	reply, err = service.SendMessage(context.Background(), "user-1", "sess-1", "hello again", nil)
	require.NoError(t, err)
	assert.Equal(t, "de novo o b", reply.Content)
}

func TestService_SendMessage_TerminalFallback(t *testing.T) {
	tests := []struct {
		name     string
		lastErr  error
		expected string
	}{
		{
			name:     "Erro 503 escolhe o texto de indisponibilidade",
			lastErr:  errors.New("googleapi: Error 503: The model is overloaded"),
			expected: unavailableFallback,
		},
		{
			name:     "Erro genérico escolhe o texto genérico",
			lastErr:  errors.New("deadline exceeded"),
			expected: genericFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockGemini, mockChatRepo, _ := newTestService(t, testConfig())
			mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()

			mockGemini.EXPECT().
				GenerateText(gomock.Any(), gomock.Any(), gomock.Any()).
				Return("", tt.lastErr).
				Times(3)

			reply, err := service.SendMessage(context.Background(), "user-1", "sess-1", "hello", nil)

			// Depois do rate-gate a conversa nunca falha
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reply.Content)
		})
	}
}

func TestService_SendMessage_PromptCarriesContextAndHistory(t *testing.T) {
	service, mockGemini, mockChatRepo, clock := newTestService(t, testConfig())
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()

	fc := &domain.FinancialContext{
		CurrentRevenue:   299900,
		ProjectedRevenue: 431856,
		Expenses:         950000,
		GrowthRate:       19.96,
		TimeHorizon:      12,
		CashFlow:         -650100,
		ProfitMargin:     -216.77,
	}

	var firstPrompt, secondPrompt string

	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, prompt string) (string, error) {
			firstPrompt = prompt
			return "first reply", nil
		})

	_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "What is my runway?", fc)
	require.NoError(t, err)

	assert.Contains(t, firstPrompt, "CFO advisor")
	assert.Contains(t, firstPrompt, "950000.00")
	assert.Contains(t, firstPrompt, "User: What is my runway?")

	clock.advance(10 * time.Second)

	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, prompt string) (string, error) {
			secondPrompt = prompt
			return "second reply", nil
		})

	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "Should I hire?", nil)
	require.NoError(t, err)

	// O segundo prompt carrega os turnos anteriores
	assert.Contains(t, secondPrompt, "User: What is my runway?")
	assert.Contains(t, secondPrompt, "Assistant: first reply")
	assert.Contains(t, secondPrompt, "User: Should I hire?")
}

func TestService_SendMessage_HistoryWindowLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Advisor.MinIntervalSeconds = 0
	cfg.Advisor.MaxRequestsPerMinute = 100
	cfg.Advisor.HistoryWindow = 2

	service, mockGemini, mockChatRepo, clock := newTestService(t, cfg)
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()

	var lastPrompt string
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, prompt string) (string, error) {
			lastPrompt = prompt
			return "ok", nil
		}).
		Times(4)

	messages := []string{"primeira", "segunda", "terceira", "quarta"}
	for _, msg := range messages {
		_, err := service.SendMessage(context.Background(), "user-1", "sess-1", msg, nil)
		require.NoError(t, err)
		clock.advance(time.Second)
	}

	// Janela de 2 turnos: só o último par aparece no prompt
	assert.NotContains(t, lastPrompt, "User: primeira")
	assert.NotContains(t, lastPrompt, "User: segunda")
	assert.Contains(t, lastPrompt, "User: terceira")
	assert.Contains(t, lastPrompt, "User: quarta")
}

func TestService_SendMessage_PersistenceFailureDoesNotBreakChat(t *testing.T) {
	service, mockGemini, mockChatRepo, _ := newTestService(t, testConfig())

	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil)
	mockChatRepo.EXPECT().
		Insert(gomock.Any()).
		Return(nil, errors.New("conexão recusada")).
		Times(2)

	reply, err := service.SendMessage(context.Background(), "user-1", "sess-1", "hello", nil)

	require.NoError(t, err)
	assert.Equal(t, "resposta", reply.Content)
}

func TestService_HistoryAndClear(t *testing.T) {
	service, mockGemini, mockChatRepo, clock := newTestService(t, testConfig())
	mockChatRepo.EXPECT().Insert(gomock.Any()).Return(nil, nil).AnyTimes()
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		Return("resposta", nil).
		Times(2)

	_, err := service.SendMessage(context.Background(), "user-1", "sess-1", "oi", nil)
	require.NoError(t, err)

	history := service.History("user-1")
	require.Len(t, history, 2)
	assert.True(t, history[0].IsUser)
	assert.Equal(t, "oi", history[0].Content)
	assert.False(t, history[1].IsUser)

	// Histórico de outro usuário é independente
	assert.Empty(t, service.History("user-2"))

	service.ClearHistory("user-1")
	assert.Empty(t, service.History("user-1"))

	// Limpar o histórico não zera o rate-gate
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "de novo", nil)
	assert.ErrorIs(t, err, ErrRateLimited)

	clock.advance(3 * time.Second)
	_, err = service.SendMessage(context.Background(), "user-1", "sess-1", "de novo", nil)
	assert.NoError(t, err)
}

func TestService_GenerateInsights(t *testing.T) {
	service, mockGemini, _, _ := newTestService(t, testConfig())

	fc := domain.FinancialContext{
		CurrentRevenue:   299900,
		ProjectedRevenue: 431856,
		Expenses:         950000,
		TimeHorizon:      12,
	}

	var prompt string
	mockGemini.EXPECT().
		GenerateText(gomock.Any(), "model-a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p string) (string, error) {
			prompt = p
			return "1. ... 2. ... 3. ...", nil
		})

	insights, err := service.GenerateInsights(context.Background(), "user-1", fc)

	require.NoError(t, err)
	assert.Equal(t, "1. ... 2. ... 3. ...", insights)
	assert.Contains(t, prompt, "3 short, actionable insights")
	assert.Contains(t, prompt, "431856.00")

	// Insights consomem o mesmo rate-gate da conversa
	_, err = service.GenerateInsights(context.Background(), "user-1", fc)
	assert.ErrorIs(t, err, ErrRateLimited)
}
