package repository

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

const simulationsTable = "simulations"

type SimulationRepository interface {
	ListByUser(userID string) ([]*domain.Simulation, error)
	Insert(simulation *domain.Simulation) (*domain.Simulation, error)
	Delete(userID, simulationID string) error
	CountByUser(userID string) (int, error)
}

type simulationRepository struct {
	conn *postgres.Connection
}

func NewSimulationRepository(conn *postgres.Connection) SimulationRepository {
	return &simulationRepository{
		conn: conn,
	}
}

func (r *simulationRepository) ListByUser(userID string) ([]*domain.Simulation, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "name", "description", "inputs", "results", "created_at").
		From(simulationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	simSQL, simArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(simSQL, simArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var simulations []*domain.Simulation
	for rows.Next() {
		var simulation domain.Simulation
		var inputsRaw, resultsRaw []byte

		if err := rows.Scan(
			&simulation.ID,
			&simulation.UserID,
			&simulation.Name,
			&simulation.Description,
			&inputsRaw,
			&resultsRaw,
			&simulation.CreatedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(inputsRaw, &simulation.Inputs); err != nil {
			return nil, fmt.Errorf("erro ao decodificar inputs da simulação %s: %w", simulation.ID, err)
		}
		if err := json.Unmarshal(resultsRaw, &simulation.Results); err != nil {
			return nil, fmt.Errorf("erro ao decodificar results da simulação %s: %w", simulation.ID, err)
		}

		simulations = append(simulations, &simulation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return simulations, nil
}

func (r *simulationRepository) Insert(simulation *domain.Simulation) (*domain.Simulation, error) {
	if simulation.ID == "" {
		simulation.ID = utils.MustNewID()
	}

	inputsRaw, err := json.Marshal(simulation.Inputs)
	if err != nil {
		return nil, fmt.Errorf("erro ao codificar inputs da simulação: %w", err)
	}

	resultsRaw, err := json.Marshal(simulation.Results)
	if err != nil {
		return nil, fmt.Errorf("erro ao codificar results da simulação: %w", err)
	}

	queryBuilder := squirrel.
		Insert(simulationsTable).
		Columns("id", "user_id", "name", "description", "inputs", "results").
		Values(simulation.ID, simulation.UserID, simulation.Name, simulation.Description, inputsRaw, resultsRaw).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	simSQL, simArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(simSQL, simArgs...).Scan(&simulation.CreatedAt)
	if err != nil {
		return nil, err
	}

	return simulation, nil
}

func (r *simulationRepository) Delete(userID, simulationID string) error {
	queryBuilder := squirrel.
		Delete(simulationsTable).
		Where(squirrel.Eq{"id": simulationID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	simSQL, simArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(simSQL, simArgs...)
	if err != nil {
		return fmt.Errorf("erro ao remover simulação: %w", err)
	}

	return nil
}

func (r *simulationRepository) CountByUser(userID string) (int, error) {
	queryBuilder := squirrel.
		Select("COUNT(*)").
		From(simulationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	simSQL, simArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.conn.QueryRow(simSQL, simArgs...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
