package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/application/dto"
	"github.com/jhoicas/inventario-ai/internal/application/usecase"
	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/memory"
)

func request(t *testing.T, body string) dto.ItemRequest {
	t.Helper()
	var in dto.ItemRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestItemUseCase_CreateConCoercion(t *testing.T) {
	uc := usecase.NewItemUseCase(memory.NewItemRepository())
	ctx := context.Background()

	got, err := uc.Create(ctx, request(t, `{"name":"Candles","quantity":"4","price":"abc"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, int64(4), got.Quantity)
	assert.True(t, got.Price.IsZero())
	assert.Equal(t, int64(0), got.MinStock)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, got.ID, list[0].ID)
}

func TestItemUseCase_CreateValidaciones(t *testing.T) {
	uc := usecase.NewItemUseCase(memory.NewItemRepository())
	ctx := context.Background()

	_, err := uc.Create(ctx, request(t, `{"quantity":1}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, request(t, `{"name":"x","quantity":-1}`))
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	_, err = uc.Create(ctx, request(t, `{"name":"x","price":-1}`))
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestItemUseCase_UpdateYDelete(t *testing.T) {
	uc := usecase.NewItemUseCase(memory.NewItemRepository())
	ctx := context.Background()
	created, err := uc.Create(ctx, request(t, `{"name":"Milk","category":"Grocery","quantity":6,"price":2}`))
	require.NoError(t, err)

	upd, err := uc.Update(ctx, created.ID, request(t, `{"quantity":9,"price":"2.5","minStock":10}`))
	require.NoError(t, err)
	require.NotNil(t, upd)
	assert.Equal(t, "Milk", upd.Name, "nombre vacío conserva el actual")
	assert.Equal(t, "General", upd.Category, "categoría ausente vuelve a General")
	assert.Equal(t, int64(9), upd.Quantity)
	assert.True(t, upd.Price.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, int64(10), upd.MinStock)

	missing, err := uc.Update(ctx, "nope", request(t, `{}`))
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)

	gone, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestItemUseCase_PrecioRedondeadoYAcotado(t *testing.T) {
	uc := usecase.NewItemUseCase(memory.NewItemRepository())
	ctx := context.Background()

	got, err := uc.Create(ctx, request(t, `{"name":"Pen","quantity":1,"price":"1.234567"}`))
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1.2346")))

	_, err = uc.Create(ctx, request(t, `{"name":"Yacht","quantity":1,"price":10000000000}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
