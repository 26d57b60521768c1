package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/memory"
)

func newItem(name, category string, qty, threshold int64) *entity.Item {
	return &entity.Item{
		ID:               uuid.NewString(),
		Name:             name,
		Category:         category,
		Quantity:         qty,
		UnitPrice:        decimal.NewFromInt(10),
		ReorderThreshold: threshold,
	}
}

func TestItemRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()

	it := newItem("Candles", "General", 4, 5)
	require.NoError(t, repo.Create(ctx, it))
	assert.False(t, it.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Candles", got.Name)

	// Las copias devueltas no alteran el almacén.
	got.Quantity = 999
	again, _ := repo.GetByID(ctx, it.ID)
	assert.Equal(t, int64(4), again.Quantity)

	got.Quantity = 7
	require.NoError(t, repo.Update(ctx, got))
	again, _ = repo.GetByID(ctx, it.ID)
	assert.Equal(t, int64(7), again.Quantity)
	assert.Equal(t, it.CreatedAt, again.CreatedAt)

	require.NoError(t, repo.Delete(ctx, it.ID))
	missing, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Delete(ctx, it.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, it), domain.ErrNotFound)
}

func TestItemRepo_Consultas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	require.NoError(t, repo.Create(ctx, newItem("Apple", "Grocery", 3, 10)))
	require.NoError(t, repo.Create(ctx, newItem("Candles", "General", 8, 5)))
	require.NoError(t, repo.Create(ctx, newItem("Milk", "Grocery", 20, 10)))

	byName, err := repo.FindByExactName(ctx, "candle")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "Candles", byName.Name)

	frag, err := repo.FindByNameFragment(ctx, "ppl")
	require.NoError(t, err)
	require.NotNil(t, frag)
	assert.Equal(t, "Apple", frag.Name)

	groc, err := repo.ListByCategory(ctx, "GROC")
	require.NoError(t, err)
	require.Len(t, groc, 2)
	assert.Equal(t, "Apple", groc[0].Name, "orden de creación")

	low, err := repo.ListBelowReorderThreshold(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Apple", low[0].Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTxRunner_SerializaLecturaModificacionEscritura(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	it := newItem("Apple", "Grocery", 0, 10)
	require.NoError(t, repo.Create(ctx, it))
	runner := memory.NewTxRunner(repo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = runner.Run(ctx, func(items repository.ItemRepository) error {
				cur, err := items.GetForUpdate(ctx, it.ID)
				if err != nil {
					return err
				}
				cur.Quantity++
				return items.Update(ctx, cur)
			})
		}()
	}
	wg.Wait()

	final, _ := repo.GetByID(ctx, it.ID)
	assert.Equal(t, int64(50), final.Quantity)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	runner := memory.NewTxRunner(memory.NewItemRepository())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := runner.Run(ctx, func(repository.ItemRepository) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
