package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
)

// Amplitudes da perturbação da série histórica a cada tick
const (
	revenueJitterRange  = 125000.0
	expensesJitterRange = 75000.0
)

// HistoricalSeriesConfig representa a configuração do agendador da série histórica
type HistoricalSeriesConfig struct {
	IntervalSeconds int
	Enabled         bool
}

// HistoricalSeriesService mantém a série histórica mostrada nos gráficos
// do dashboard. A série é ilustrativa: parte de uma semente fixa e é
// perturbada periodicamente para dar vivacidade visual. Não é ingestão
// de dados reais e não participa da projeção.
type HistoricalSeriesService struct {
	scheduler *gocron.Scheduler
	config    HistoricalSeriesConfig

	mu     sync.RWMutex
	series []domain.HistoricalPoint

	// random é injetável nos testes; retorna valores em [0, 1)
	random func() float64
}

// seedSeries devolve a semente da série: oito meses com tendência de alta
func seedSeries() []domain.HistoricalPoint {
	return []domain.HistoricalPoint{
		{Month: "Jan", Revenue: 1250000, Expenses: 875000},
		{Month: "Feb", Revenue: 1300000, Expenses: 900000},
		{Month: "Mar", Revenue: 1200000, Expenses: 850000},
		{Month: "Apr", Revenue: 1375000, Expenses: 950000},
		{Month: "May", Revenue: 1450000, Expenses: 1000000},
		{Month: "Jun", Revenue: 1550000, Expenses: 1050000},
		{Month: "Jul", Revenue: 1600000, Expenses: 1100000},
		{Month: "Aug", Revenue: 1750000, Expenses: 1200000},
	}
}

// NewHistoricalSeriesService cria o serviço com a série semente carregada
func NewHistoricalSeriesService(appConfig *config.Config) *HistoricalSeriesService {
	seriesConfig := HistoricalSeriesConfig{
		IntervalSeconds: appConfig.HistoricalSync.IntervalSeconds,
		Enabled:         appConfig.HistoricalSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"interval_seconds": seriesConfig.IntervalSeconds,
		"enabled":          seriesConfig.Enabled,
	}).Info("Configuração do agendador da série histórica carregada")

	return &HistoricalSeriesService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    seriesConfig,
		series:    seedSeries(),
		random:    rand.Float64,
	}
}

// Start agenda a perturbação periódica da série
func (s *HistoricalSeriesService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Perturbação da série histórica desabilitada por configuração")
		return nil
	}

	logrus.WithField("interval_seconds", s.config.IntervalSeconds).
		Info("Iniciando agendador da série histórica")

	_, err := s.scheduler.Every(s.config.IntervalSeconds).Seconds().Do(func() {
		s.perturb()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar perturbação da série histórica: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da série histórica")
		s.scheduler.Stop()
	}()

	return nil
}

// Snapshot retorna uma cópia da série corrente
func (s *HistoricalSeriesService) Snapshot() []domain.HistoricalPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := make([]domain.HistoricalPoint, len(s.series))
	copy(series, s.series)

	return series
}

// perturb desloca cada ponto da série dentro da amplitude configurada,
// sem deixar valores negativos
func (s *HistoricalSeriesService) perturb() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.series {
		s.series[i].Revenue = clampPositive(s.series[i].Revenue + (s.random()-0.5)*revenueJitterRange)
		s.series[i].Expenses = clampPositive(s.series[i].Expenses + (s.random()-0.5)*expensesJitterRange)
	}
}

func clampPositive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
