package advising

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

// maxHistoryEntries limita o histórico em memória por usuário
const maxHistoryEntries = 100

// Textos de contingência usados quando todos os modelos falham.
// A variante escolhida depende do último erro observado na cadeia.
const (
	unavailableFallback = `The AI advisor is under heavy demand right now and could not generate a tailored answer. A few general guidelines while you wait: keep at least 6 months of runway before committing to new fixed costs, review your three largest expense lines every month, and revisit pricing whenever your profit margin drops below target. Please try again in a few minutes.`

	genericFallback = `I could not reach the AI advisor at the moment. Meanwhile, a sound starting point: compare your monthly expenses against revenue, confirm your runway covers the next two quarters, and prioritize spending that directly drives revenue. Please try again shortly.`
)

// Advisor é o consultor financeiro conversacional
type Advisor interface {
	SendMessage(ctx context.Context, userID, sessionID, message string, fc *domain.FinancialContext) (domain.ChatMessage, error)
	GenerateInsights(ctx context.Context, userID string, fc domain.FinancialContext) (string, error)
	History(userID string) []domain.ChatMessage
	ClearHistory(userID string)
}

// session guarda o estado conversacional e o rate-gate de um usuário
type session struct {
	mu          sync.Mutex
	history     []domain.ChatMessage
	lastRequest time.Time
	windowCount int
}

type Service struct {
	gemini   gemini.Integrator
	chatRepo repository.ChatHistoryRepository
	cfg      *config.Config

	mu       sync.Mutex
	sessions map[string]*session

	// preferredModel é o último modelo que respondeu com sucesso e passa
	// a ser tentado primeiro nas próximas requisições
	preferredModel string

	now func() time.Time
}

func NewService(cfg *config.Config, geminiService gemini.Integrator, chatRepo repository.ChatHistoryRepository) *Service {
	return &Service{
		gemini:   geminiService,
		chatRepo: chatRepo,
		cfg:      cfg,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// SendMessage rate-limita, valida e conversa com o modelo. O rate-gate
// vem antes da validação e consome orçamento mesmo em mensagem inválida.
// Passadas as duas fases, nunca retorna erro: se todos os modelos
// falharem, a resposta é o texto de contingência.
func (s *Service) SendMessage(ctx context.Context, userID, sessionID, message string, fc *domain.FinancialContext) (domain.ChatMessage, error) {
	sess := s.sessionFor(userID)

	sess.mu.Lock()
	if err := s.gate(sess); err != nil {
		sess.mu.Unlock()
		return domain.ChatMessage{}, err
	}

	if strings.TrimSpace(message) == "" {
		sess.mu.Unlock()
		return domain.ChatMessage{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > s.cfg.Advisor.MaxMessageLength {
		sess.mu.Unlock()
		return domain.ChatMessage{}, ErrMessageTooLong
	}

	userMsg := domain.ChatMessage{
		ID:        utils.MustNewID(),
		Content:   message,
		IsUser:    true,
		Timestamp: s.now(),
	}

	prompt := buildPrompt(fc, sess.history, s.cfg.Advisor.HistoryWindow, message)
	sess.append(userMsg)
	sess.mu.Unlock()

	reply := s.generate(ctx, prompt)

	assistantMsg := domain.ChatMessage{
		ID:        utils.MustNewID(),
		Content:   reply,
		IsUser:    false,
		Timestamp: s.now(),
	}

	sess.mu.Lock()
	sess.append(assistantMsg)
	sess.mu.Unlock()

	s.persistTurn(userID, sessionID, userMsg, fc)
	s.persistTurn(userID, sessionID, assistantMsg, nil)

	return assistantMsg, nil
}

// GenerateInsights produz a análise proativa do dashboard. Passa pelo
// mesmo rate-gate da conversa para conter o consumo da API.
func (s *Service) GenerateInsights(ctx context.Context, userID string, fc domain.FinancialContext) (string, error) {
	sess := s.sessionFor(userID)

	sess.mu.Lock()
	if err := s.gate(sess); err != nil {
		sess.mu.Unlock()
		return "", err
	}
	sess.mu.Unlock()

	return s.generate(ctx, buildInsightsPrompt(fc)), nil
}

// History retorna uma cópia do histórico em memória do usuário
func (s *Service) History(userID string) []domain.ChatMessage {
	sess := s.sessionFor(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	history := make([]domain.ChatMessage, len(sess.history))
	copy(history, sess.history)

	return history
}

// ClearHistory zera a conversa mantendo o estado do rate-gate
func (s *Service) ClearHistory(userID string) {
	sess := s.sessionFor(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = nil
}

func (s *Service) sessionFor(userID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}

	return sess
}

// gate aplica o intervalo mínimo entre requisições e o teto por janela
// de 60s. O contador só reinicia quando se passam mais de 60s desde a
// última requisição aceita. Chamar com sess.mu em posse.
func (s *Service) gate(sess *session) error {
	now := s.now()

	if !sess.lastRequest.IsZero() && now.Sub(sess.lastRequest) > time.Minute {
		sess.windowCount = 0
	}

	minInterval := time.Duration(s.cfg.Advisor.MinIntervalSeconds) * time.Second
	if !sess.lastRequest.IsZero() && now.Sub(sess.lastRequest) < minInterval {
		return ErrRateLimited
	}

	if sess.windowCount >= s.cfg.Advisor.MaxRequestsPerMinute {
		return ErrRateLimited
	}

	sess.windowCount++
	sess.lastRequest = now

	return nil
}

// generate percorre a cadeia de modelos em ordem, com o último modelo
// bem-sucedido promovido para a frente. Quando todos falham, devolve o
// texto de contingência escolhido pelo último erro.
func (s *Service) generate(ctx context.Context, prompt string) string {
	var lastErr error

	for _, model := range s.modelOrder() {
		text, err := s.gemini.GenerateText(ctx, model, prompt)
		if err != nil {
			logrus.WithError(err).Warnf("Modelo %s falhou, tentando o próximo da cadeia", model)
			lastErr = err
			continue
		}

		s.mu.Lock()
		s.preferredModel = model
		s.mu.Unlock()

		return text
	}

	logrus.WithError(lastErr).Error("Todos os modelos da cadeia falharam, usando resposta de contingência")

	return fallbackFor(lastErr)
}

// modelOrder devolve a cadeia configurada com o modelo preferido na frente
func (s *Service) modelOrder() []string {
	s.mu.Lock()
	preferred := s.preferredModel
	s.mu.Unlock()

	models := s.cfg.Gemini.Models
	if preferred == "" {
		return models
	}

	order := make([]string, 0, len(models))
	order = append(order, preferred)
	for _, model := range models {
		if model != preferred {
			order = append(order, model)
		}
	}

	return order
}

func fallbackFor(lastErr error) string {
	if lastErr == nil {
		return genericFallback
	}

	msg := strings.ToLower(lastErr.Error())
	if strings.Contains(msg, "503") || strings.Contains(msg, "unavailable") || strings.Contains(msg, "overloaded") {
		return unavailableFallback
	}

	return genericFallback
}

// persistTurn grava o turno na base hospedada. Falha de persistência não
// derruba a conversa: loga e segue.
func (s *Service) persistTurn(userID, sessionID string, msg domain.ChatMessage, fc *domain.FinancialContext) {
	_, err := s.chatRepo.Insert(&domain.ChatHistoryRecord{
		ID:               msg.ID,
		UserID:           userID,
		SessionID:        sessionID,
		Message:          msg.Content,
		IsUser:           msg.IsUser,
		FinancialContext: fc,
	})
	if err != nil {
		logrus.WithError(err).Warnf("Erro ao persistir turno de chat do usuário %s", userID)
	}
}

func (sess *session) append(msg domain.ChatMessage) {
	sess.history = append(sess.history, msg)
	if len(sess.history) > maxHistoryEntries {
		sess.history = sess.history[len(sess.history)-maxHistoryEntries:]
	}
}
