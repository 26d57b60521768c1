package scheduler_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/scheduler"
	"github.com/jhoicas/inventario-ai/pkg/logger"
)

type gaugeSpy struct{ last int }

func (g *gaugeSpy) SetLowStock(n int) { g.last = n }

func TestLowStockWatcher_Check(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "a", Name: "Apple", Quantity: 3, ReorderThreshold: 10, UnitPrice: decimal.NewFromInt(1)}))
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "b", Name: "Chair", Quantity: 4, ReorderThreshold: 3, UnitPrice: decimal.NewFromInt(1)}))

	var buf bytes.Buffer
	spy := &gaugeSpy{}
	w, err := scheduler.NewLowStockWatcher(repo, spy, logger.New(logger.Config{Env: "test", Level: "debug", Output: &buf}), time.Hour)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	n, err := w.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, spy.last)
	assert.Contains(t, buf.String(), `"name":"Apple"`)
	assert.NotContains(t, buf.String(), `"name":"Chair"`)
}

func TestNewLowStockWatcher_IntervaloInvalido(t *testing.T) {
	_, err := scheduler.NewLowStockWatcher(memory.NewItemRepository(), nil, nil, 0)
	assert.Error(t, err)
}
