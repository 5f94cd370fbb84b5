package postgres

import (
	"context"
	"testing"

	"communityhub/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestOpen_RequiresDSN(t *testing.T) {
	db, err := Open(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrMissingConfig)
	require.Nil(t, db)
}

func TestStoredValueTrimming(t *testing.T) {
	require.Equal(t, "19:00", clockTime("19:00:00"))
	require.Equal(t, "19:00", clockTime("19:00"))
	require.Equal(t, "", clockTime(""))
	require.Equal(t, "2024-03-20", calendarDate("2024-03-20T00:00:00Z"))
	require.Equal(t, "2024-03-20", calendarDate("2024-03-20"))
}
