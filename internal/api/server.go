package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/api/handler"
	"github.com/vfg2006/cfo-helper-api/internal/api/handler/router"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/scheduler"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/advising"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/analyzing"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/identifying"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/onboarding"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/projecting"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/reporting"
	"github.com/vfg2006/cfo-helper-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Repositories agrupa os repositórios usados diretamente pelos handlers
type Repositories struct {
	FinancialData repository.FinancialDataRepository
	Simulations   repository.SimulationRepository
	Transactions  repository.TransactionRepository
	ChatHistory   repository.ChatHistoryRepository
}

func New(
	config *config.Config,
	identifier identifying.Identifier,
	onboarder onboarding.Onboarder,
	projector projecting.Projector,
	advisor advising.Advisor,
	reporter reporting.Reporter,
	analytics *analyzing.Service,
	historicalSeries *scheduler.HistoricalSeriesService,
	repos Repositories,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Profile(onboarder)...),
		router.WithRoutes(handler.Simulations(projector, analytics, repos.Simulations, repos.FinancialData)...),
		router.WithRoutes(handler.FinancialData(repos.FinancialData)...),
		router.WithRoutes(handler.Transactions(repos.Transactions)...),
		router.WithRoutes(handler.Dashboard(analytics, historicalSeries)...),
		router.WithRoutes(handler.Reports(reporter, analytics, historicalSeries)...),
		router.WithRoutes(handler.Advisor(advisor, repos.ChatHistory)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(identifier),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
