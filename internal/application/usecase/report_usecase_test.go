package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/application/usecase"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/memory"
)

type rendererSpy struct {
	got ports.StockReport
	err error
}

func (r *rendererSpy) RenderStockReport(_ context.Context, rep ports.StockReport) ([]byte, error) {
	r.got = rep
	return []byte("%PDF-fake"), r.err
}

func TestReportUseCase_StockReport(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "a", Name: "Apple", Quantity: 3, ReorderThreshold: 10, UnitPrice: decimal.NewFromInt(10)}))
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "b", Name: "Chair", Quantity: 2, ReorderThreshold: 1, UnitPrice: decimal.NewFromInt(50)}))

	spy := &rendererSpy{}
	doc, err := usecase.NewReportUseCase(repo, spy, "$").StockReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	assert.Len(t, spy.got.Items, 2)
	assert.Equal(t, 1, spy.got.LowStockCount)
	assert.True(t, spy.got.TotalValue.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, "$", spy.got.CurrencySymbol)
}

func TestReportUseCase_ErrorDeRender(t *testing.T) {
	spy := &rendererSpy{err: errors.New("sin fuentes")}
	_, err := usecase.NewReportUseCase(memory.NewItemRepository(), spy, "$").StockReport(context.Background())
	assert.ErrorContains(t, err, "sin fuentes")
}
