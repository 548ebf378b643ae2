package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/internal/scheduler"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/analyzing"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

// GetDashboardSummary retorna o agregado exibido no painel principal
func GetDashboardSummary(analytics *analyzing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		summary, err := analytics.Summary(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar resumo do painel", nil)
			return
		}

		respondJSON(w, http.StatusOK, summary)
	}
}

// GetHistoricalSeries retorna a série ilustrativa dos gráficos do painel
func GetHistoricalSeries(series *scheduler.HistoricalSeriesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		respondJSON(w, http.StatusOK, series.Snapshot())
	}
}
