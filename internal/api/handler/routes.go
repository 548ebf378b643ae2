package handler

import (
	"net/http"

	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/api/handler/router"
	"github.com/vfg2006/cfo-helper-api/internal/scheduler"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/advising"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/analyzing"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/onboarding"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/projecting"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/reporting"
	"github.com/vfg2006/cfo-helper-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Profile agrupa as rotas de perfil e onboarding. Disponíveis a qualquer
// usuário autenticado, onboardado ou não.
func Profile(service onboarding.Onboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodPut,
			Handler:     UpdateMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
		{
			Path:        "/v1/onboarding/complete",
			Method:      http.MethodPost,
			Handler:     CompleteOnboarding(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
	}
}

// Simulations agrupa as rotas do simulador. Exigem onboarding concluído,
// pois a projeção depende do tipo de organização.
func Simulations(
	projector projecting.Projector,
	analytics *analyzing.Service,
	simulationRepo repository.SimulationRepository,
	financialDataRepo repository.FinancialDataRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/simulations/run",
			Method:      http.MethodPost,
			Handler:     RunSimulation(projector, analytics, financialDataRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/simulations",
			Method:      http.MethodPost,
			Handler:     SaveSimulation(projector, simulationRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/simulations",
			Method:      http.MethodGet,
			Handler:     ListSimulations(simulationRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/simulations/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSimulation(simulationRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
	}
}

// FinancialData agrupa as rotas da foto financeira persistida
func FinancialData(financialDataRepo repository.FinancialDataRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/financial-data",
			Method:      http.MethodGet,
			Handler:     GetFinancialData(financialDataRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
		{
			Path:        "/v1/financial-data",
			Method:      http.MethodPut,
			Handler:     UpsertFinancialData(financialDataRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
	}
}

// Transactions agrupa o CRUD de movimentações financeiras
func Transactions(transactionRepo repository.TransactionRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/transactions",
			Method:      http.MethodGet,
			Handler:     ListTransactions(transactionRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
		{
			Path:        "/v1/transactions",
			Method:      http.MethodPost,
			Handler:     CreateTransaction(transactionRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTransaction(transactionRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTransaction(transactionRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireClaims()},
		},
	}
}

// Dashboard agrupa as rotas do painel principal
func Dashboard(analytics *analyzing.Service, series *scheduler.HistoricalSeriesService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/summary",
			Method:      http.MethodGet,
			Handler:     GetDashboardSummary(analytics),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/dashboard/historical",
			Method:      http.MethodGet,
			Handler:     GetHistoricalSeries(series),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
	}
}

// Reports agrupa os relatórios mensais e a exportação em PDF
func Reports(service reporting.Reporter, analytics *analyzing.Service, series *scheduler.HistoricalSeriesService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports",
			Method:      http.MethodGet,
			Handler:     ListMonthlyReports(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/reports/generate",
			Method:      http.MethodPost,
			Handler:     GenerateMonthlyReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/reports/export",
			Method:      http.MethodPost,
			Handler:     ExportReport(service, analytics, series),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
	}
}

// Advisor agrupa as rotas do consultor de IA
func Advisor(service advising.Advisor, chatRepo repository.ChatHistoryRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/advisor/message",
			Method:      http.MethodPost,
			Handler:     SendAdvisorMessage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/advisor/insights",
			Method:      http.MethodPost,
			Handler:     GetAdvisorInsights(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/advisor/history",
			Method:      http.MethodGet,
			Handler:     GetAdvisorHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/advisor/history",
			Method:      http.MethodDelete,
			Handler:     ClearAdvisorHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
		{
			Path:        "/v1/advisor/history/persisted",
			Method:      http.MethodGet,
			Handler:     GetPersistedChatHistory(chatRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.RequireOnboarding()},
		},
	}
}
