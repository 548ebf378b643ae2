package repository

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/cfo-helper-api/infrastructure/database/postgres"
	"github.com/vfg2006/cfo-helper-api/internal/domain"
	"github.com/vfg2006/cfo-helper-api/pkg/utils"
)

const chatHistoryTable = "ai_chat_history"

type ChatHistoryRepository interface {
	Insert(record *domain.ChatHistoryRecord) (*domain.ChatHistoryRecord, error)
	ListBySession(userID, sessionID string) ([]*domain.ChatHistoryRecord, error)
}

type chatHistoryRepository struct {
	conn *postgres.Connection
}

func NewChatHistoryRepository(conn *postgres.Connection) ChatHistoryRepository {
	return &chatHistoryRepository{
		conn: conn,
	}
}

func (r *chatHistoryRepository) Insert(record *domain.ChatHistoryRecord) (*domain.ChatHistoryRecord, error) {
	if record.ID == "" {
		record.ID = utils.MustNewID()
	}

	var contextRaw []byte
	if record.FinancialContext != nil {
		raw, err := json.Marshal(record.FinancialContext)
		if err != nil {
			return nil, fmt.Errorf("erro ao codificar contexto financeiro do chat: %w", err)
		}
		contextRaw = raw
	}

	queryBuilder := squirrel.
		Insert(chatHistoryTable).
		Columns("id", "user_id", "session_id", "message", "is_user", "financial_context").
		Values(record.ID, record.UserID, record.SessionID, record.Message, record.IsUser, contextRaw).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	chatSQL, chatArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(chatSQL, chatArgs...).Scan(&record.CreatedAt)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListBySession retorna o histórico da sessão em ordem cronológica
func (r *chatHistoryRepository) ListBySession(userID, sessionID string) ([]*domain.ChatHistoryRecord, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "session_id", "message", "is_user", "financial_context", "created_at").
		From(chatHistoryTable).
		Where(squirrel.Eq{"user_id": userID, "session_id": sessionID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	chatSQL, chatArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(chatSQL, chatArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar histórico de chat: %w", err)
	}
	defer rows.Close()

	var records []*domain.ChatHistoryRecord
	for rows.Next() {
		var record domain.ChatHistoryRecord
		var contextRaw []byte

		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.SessionID,
			&record.Message,
			&record.IsUser,
			&contextRaw,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(contextRaw) > 0 {
			if err := json.Unmarshal(contextRaw, &record.FinancialContext); err != nil {
				return nil, fmt.Errorf("erro ao decodificar contexto financeiro do chat %s: %w", record.ID, err)
			}
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
