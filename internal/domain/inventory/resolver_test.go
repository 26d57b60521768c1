package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/inventory"
)

// sliceFinder implementa NameFinder sobre un slice en orden de creación.
type sliceFinder struct {
	items []*entity.Item
	calls int
	err   error
}

func (f *sliceFinder) FindByExactName(_ context.Context, ref string) (*entity.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, it := range f.items {
		if inventory.MatchesExactly(it.Name, ref) {
			return it, nil
		}
	}
	return nil, nil
}

func (f *sliceFinder) FindByNameFragment(_ context.Context, ref string) (*entity.Item, error) {
	f.calls++
	for _, it := range f.items {
		if inventory.ContainsFragment(it.Name, ref) {
			return it, nil
		}
	}
	return nil, nil
}

func TestResolve_PoliticaDosNiveles(t *testing.T) {
	candles := &entity.Item{ID: "1", Name: "Candles"}
	f := &sliceFinder{items: []*entity.Item{candles}}
	ctx := context.Background()

	got, err := inventory.Resolve(ctx, f, "candle")
	require.NoError(t, err)
	assert.Same(t, candles, got, "plural tolerado")

	got, err = inventory.Resolve(ctx, f, "cand")
	require.NoError(t, err)
	assert.Same(t, candles, got, "subcadena")

	got, err = inventory.Resolve(ctx, f, "xyz")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolve_ExactoAntesQueSubcadena(t *testing.T) {
	pen := &entity.Item{ID: "1", Name: "Pencil"}
	exact := &entity.Item{ID: "2", Name: "pen"}
	f := &sliceFinder{items: []*entity.Item{pen, exact}}

	got, err := inventory.Resolve(context.Background(), f, "PEN")
	require.NoError(t, err)
	assert.Same(t, exact, got)
}

func TestResolve_PrimerCandidatoEnOrden(t *testing.T) {
	a := &entity.Item{ID: "1", Name: "Red Candle"}
	b := &entity.Item{ID: "2", Name: "Blue Candle"}
	f := &sliceFinder{items: []*entity.Item{a, b}}

	got, err := inventory.Resolve(context.Background(), f, "candle")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestResolve_ReferenciaVaciaNoConsulta(t *testing.T) {
	f := &sliceFinder{}
	got, err := inventory.Resolve(context.Background(), f, "   ")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, f.calls)
}

func TestResolve_PropagaError(t *testing.T) {
	boom := errors.New("db caída")
	f := &sliceFinder{err: boom}
	_, err := inventory.Resolve(context.Background(), f, "apple")
	assert.ErrorIs(t, err, boom)
}

func TestMatchesExactly(t *testing.T) {
	assert.True(t, inventory.MatchesExactly("Candles", "candle"))
	assert.True(t, inventory.MatchesExactly("Candle", "candles"))
	assert.True(t, inventory.MatchesExactly("APPLE", "apple"))
	assert.False(t, inventory.MatchesExactly("Candlesticks", "candle"))
	assert.False(t, inventory.MatchesExactly("Candles", ""))
}

func TestCategoryMatches(t *testing.T) {
	assert.True(t, inventory.CategoryMatches("Grocery", "groc"))
	assert.True(t, inventory.CategoryMatches("Grocery", ""))
	assert.False(t, inventory.CategoryMatches("Grocery", "fashion"))
}
