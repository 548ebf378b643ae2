package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/identity"
	"github.com/vfg2006/cfo-helper-api/infrastructure/integrator/identity/identityclient"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/api"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/scheduler"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/advising"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/analyzing"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/identifying"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/onboarding"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/projecting"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	financialDataRepo := repository.NewFinancialDataRepository(pgConn)
	simulationRepo := repository.NewSimulationRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	monthlyReportRepo := repository.NewMonthlyReportRepository(pgConn)
	chatHistoryRepo := repository.NewChatHistoryRepository(pgConn)

	identityClient := identityclient.NewClient(cfg)
	identityIntegrator := identity.New(cfg, identityClient)

	geminiClient, err := geminiclient.NewClient(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar cliente da API generativa")
	}
	geminiIntegrator := gemini.New(cfg, geminiClient)

	identifier := identifying.NewService(cfg)
	onboarder := onboarding.NewService(userRepo, identityIntegrator)
	projector := projecting.NewService()
	advisor := advising.NewService(cfg, geminiIntegrator, chatHistoryRepo)
	reporter := reporting.NewService(transactionRepo, monthlyReportRepo)
	analytics := analyzing.NewService(financialDataRepo, transactionRepo, simulationRepo)

	historicalSeries := scheduler.NewHistoricalSeriesService(cfg)
	if err := historicalSeries.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da série histórica")
	} else {
		logrus.Info("Agendador da série histórica iniciado com sucesso")
	}

	monthlyReportSync := scheduler.NewMonthlyReportSyncService(monthlyReportRepo, reporter, cfg)
	if err := monthlyReportSync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios mensais")
	} else {
		logrus.Info("Agendador de relatórios mensais iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		identifier,
		onboarder,
		projector,
		advisor,
		reporter,
		analytics,
		historicalSeries,
		api.Repositories{
			FinancialData: financialDataRepo,
			Simulations:   simulationRepo,
			Transactions:  transactionRepo,
			ChatHistory:   chatHistoryRepo,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com a base hospedada
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
