package domain

import "time"

// ChatMessage é um turno da conversa com o consultor de IA.
// A sequência é mantida em memória pela sessão do consultor e só é
// persistida pelo caminho secundário de histórico.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatHistoryRecord é a linha de histórico persistida na base hospedada
type ChatHistoryRecord struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	SessionID        string            `json:"session_id"`
	Message          string            `json:"message"`
	IsUser           bool              `json:"is_user"`
	FinancialContext *FinancialContext `json:"financial_context,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
