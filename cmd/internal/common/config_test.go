package common

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsh2dsh/periods/counter"
)

func TestNewLayouts(t *testing.T) {
	t.Setenv("PERIODS_MONTH_LAYOUT", "")
	t.Setenv("PERIODS_QUARTER_LAYOUT", "")
	cfg, err := NewLayouts()
	require.NoError(t, err)
	assert.Equal(t, counter.MonthLayout, cfg.Month)
	assert.Equal(t, counter.QuarterLayout, cfg.Quarter)

	t.Setenv("PERIODS_MONTH_LAYOUT", "mm/yyyy")
	cfg, err = NewLayouts()
	require.NoError(t, err)
	assert.Equal(t, "mm/yyyy", cfg.Month)
	assert.Equal(t, counter.QuarterLayout, cfg.Quarter)
}

func TestConnString(t *testing.T) {
	t.Setenv("PERIODS_DB_URL", "")
	_, err := ConnString()
	require.Error(t, err)

	const url = "postgres://periods@localhost:5432/periods"
	t.Setenv("PERIODS_DB_URL", url)
	s, err := ConnString()
	require.NoError(t, err)
	assert.Equal(t, url, s)
}

func TestContextLogger(t *testing.T) {
	def := slog.Default()
	ctx := context.Background()
	assert.Same(t, def, ContextLogger(ctx, def))

	l := def.With(slog.String("by", "month"))
	assert.Same(t, l, ContextLogger(ContextWithLogger(ctx, l), def))
}
