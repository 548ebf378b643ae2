package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/analyzing"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/projecting"
	"github.com/vfg2006/cfo-helper-api/pkg/apiErrors"
)

type runSimulationRequest struct {
	Inputs domain.SimulationInputs `json:"inputs"`
}

type runSimulationResponse struct {
	Results          domain.FinancialData    `json:"results"`
	FinancialContext domain.FinancialContext `json:"financial_context"`
}

type saveSimulationRequest struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Inputs      domain.SimulationInputs `json:"inputs"`
}

// orgTypeFrom resolve o tipo de organização das claims, com fallback
// para o perfil genérico
func orgTypeFrom(claims *domain.Claims) string {
	if claims.Organization != nil && claims.Organization.OrganizationType != "" {
		return claims.Organization.OrganizationType
	}
	return domain.OrgTypeOther
}

// RunSimulation executa a projeção com os parâmetros recebidos e o tipo
// de organização do usuário. Determinística e sem efeito na base; só o
// contador de uso avança.
func RunSimulation(
	projector projecting.Projector,
	analytics *analyzing.Service,
	financialDataRepo repository.FinancialDataRepository,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req runSimulationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		results := projector.Run(req.Inputs, orgTypeFrom(claims))
		analytics.RecordSimulation(claims.UserID)

		// A última foto persistida refina o contexto do consultor; a
		// ausência dela não impede a simulação
		snapshot, err := financialDataRepo.GetLatestByUser(claims.UserID)
		if err != nil {
			logrus.WithError(err).Warnf("Erro ao buscar foto financeira do usuário %s", claims.UserID)
		}

		respondJSON(w, http.StatusOK, runSimulationResponse{
			Results:          results,
			FinancialContext: projector.ContextFrom(req.Inputs, results, snapshot),
		})
	}
}

// SaveSimulation recalcula a projeção no servidor e persiste a simulação nomeada
func SaveSimulation(projector projecting.Projector, simulationRepo repository.SimulationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req saveSimulationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome da simulação é obrigatório", nil)
			return
		}

		simulation := &domain.Simulation{
			UserID:      claims.UserID,
			Name:        req.Name,
			Description: req.Description,
			Inputs:      req.Inputs,
			Results:     projector.Run(req.Inputs, orgTypeFrom(claims)),
		}

		saved, err := simulationRepo.Insert(simulation)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar simulação", nil)
			return
		}

		respondJSON(w, http.StatusCreated, saved)
	}
}

// ListSimulations retorna as simulações salvas do usuário
func ListSimulations(simulationRepo repository.SimulationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		simulations, err := simulationRepo.ListByUser(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar simulações", nil)
			return
		}

		if simulations == nil {
			simulations = []*domain.Simulation{}
		}

		respondJSON(w, http.StatusOK, simulations)
	}
}

// DeleteSimulation remove uma simulação do usuário
func DeleteSimulation(simulationRepo repository.SimulationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		simulationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if simulationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da simulação não fornecido", nil)
			return
		}

		if err := simulationRepo.Delete(claims.UserID, simulationID); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover simulação", nil)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	}
}
