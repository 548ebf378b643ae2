package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByUserBetweenQuery_HalfOpenInterval(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	txSQL, txArgs, err := listByUserBetweenQuery("user-1", start, end)

	require.NoError(t, err)

	// Uma transação datada exatamente no primeiro instante do mês
	// seguinte não pode entrar em dois relatórios
	assert.Contains(t, txSQL, "date >= $2")
	assert.Contains(t, txSQL, "date < $3")
	assert.NotContains(t, txSQL, "date <= ")

	assert.Equal(t, []any{"user-1", start, end}, txArgs)
}
