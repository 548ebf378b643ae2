package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/internal/scheduler"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/analyzing"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/reporting"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

type generateReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type exportReportRequest struct {
	CompanyName string                  `json:"company_name"`
	Inputs      domain.SimulationInputs `json:"inputs"`
	Results     *domain.FinancialData   `json:"results"`
}

// ListMonthlyReports retorna os consolidados mensais do usuário
func ListMonthlyReports(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		reports, err := service.ListReports(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar relatórios", nil)
			return
		}

		if reports == nil {
			reports = []*domain.MonthlyReport{}
		}

		respondJSON(w, http.StatusOK, reports)
	}
}

// GenerateMonthlyReport consolida as transações do mês informado
func GenerateMonthlyReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req generateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês ou ano inválido", nil)
			return
		}

		report, err := service.SaveMonthlyReport(claims.UserID, req.Month, req.Year)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consolidar relatório mensal", nil)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}

// ExportReport gera o PDF da simulação corrente, com a série histórica
// dos gráficos, e avança o contador de exportações. Exportar sem
// resultado corrente é um conflito, não um crash.
func ExportReport(service reporting.Reporter, analytics *analyzing.Service, series *scheduler.HistoricalSeriesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req exportReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		orgType := domain.OrgTypeOther
		if claims.Organization != nil && claims.Organization.OrganizationType != "" {
			orgType = claims.Organization.OrganizationType
		}

		raw, err := service.ExportPDF(&reporting.ExportRequest{
			CompanyName: req.CompanyName,
			OrgType:     orgType,
			Inputs:      req.Inputs,
			Results:     req.Results,
			Historical:  series.Snapshot(),
			GeneratedAt: time.Now(),
		})
		if err != nil {
			if errors.Is(err, reporting.ErrNoResultToExport) {
				apiErrors.WriteError(w, apiErrors.ErrNoResultToExport, "Execute uma simulação antes de exportar", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o PDF", nil)
			return
		}

		analytics.RecordExport(claims.UserID)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="cfo-helper-report.pdf"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(raw); err != nil {
			logrus.WithError(err).Warn("Erro ao enviar o PDF")
		}
	}
}
