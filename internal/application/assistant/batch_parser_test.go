package assistant_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ai/internal/application/assistant"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

func TestParseReply_SinMarcador(t *testing.T) {
	p, err := assistant.ParseReply("Hey there 👋 how's your day going?")
	require.NoError(t, err)
	assert.False(t, p.HasBatch)
	assert.Equal(t, "Hey there 👋 how's your day going?", p.Prose)
	assert.Empty(t, p.Intents)
}

func TestParseReply_LoteValido(t *testing.T) {
	text := "Got it 🍎!\n<json>[{\"intent\":\"add_item\",\"item\":\" apple \",\"quantity\":\"5\",\"price\":50.5,\"min_stock\":3}," +
		"{\"action\":\"SHOW_CATEGORY\",\"category\":\"grocery\"},{\"intent\":\"dance\"}]</json>\ntrailing"
	p, err := assistant.ParseReply(text)
	require.NoError(t, err)
	assert.True(t, p.HasBatch)
	assert.Equal(t, "Got it 🍎!", p.Prose)
	require.Len(t, p.Intents, 3)

	a := p.Intents[0]
	assert.Equal(t, entity.ActionAddItem, a.Action)
	assert.Equal(t, "apple", a.ItemRef)
	assert.Equal(t, int64(5), a.Quantity)
	assert.True(t, a.Price.Equal(decimal.RequireFromString("50.5")))
	assert.Equal(t, int64(3), a.MinStock)

	assert.Equal(t, entity.ActionShowCategory, p.Intents[1].Action)
	assert.Equal(t, "grocery", p.Intents[1].Category)

	assert.Equal(t, entity.ActionUnknown, p.Intents[2].Action)
	assert.Equal(t, "dance", p.Intents[2].Tag)
}

func TestParseReply_NumerosNoNumericosSonCero(t *testing.T) {
	p, err := assistant.ParseReply(`ok <json>[{"intent":"increase_quantity","item":"pen","quantity":"a few","price":null}]</json>`)
	require.NoError(t, err)
	require.Len(t, p.Intents, 1)
	assert.Equal(t, int64(0), p.Intents[0].Quantity)
	assert.True(t, p.Intents[0].Price.IsZero())
}

func TestParseReply_CantidadFueraDeRangoSatura(t *testing.T) {
	p, err := assistant.ParseReply(`ok <json>[{"intent":"increase_quantity","item":"pen","quantity":18446744073709551621}]</json>`)
	require.NoError(t, err)
	require.Len(t, p.Intents, 1)
	assert.Equal(t, int64(math.MaxInt64), p.Intents[0].Quantity)
}

func TestParseReply_BloqueMarkdownDentroDelMarcador(t *testing.T) {
	p, err := assistant.ParseReply("ok\n<json>\n```json\n[{\"intent\":\"low_stock\"}]\n```\n</json>")
	require.NoError(t, err)
	require.Len(t, p.Intents, 1)
	assert.Equal(t, entity.ActionLowStock, p.Intents[0].Action)
}

func TestParseReply_Malformado(t *testing.T) {
	for _, payload := range []string{
		`[{"intent":"add_item",`,
		`{"intent":"add_item","item":"apple"}`,
		`not json at all`,
	} {
		p, err := assistant.ParseReply("Sure!<json>" + payload + "</json>")
		assert.ErrorIs(t, err, assistant.ErrMalformedBatch, payload)
		assert.True(t, p.HasBatch)
		assert.Equal(t, "Sure!", p.Prose)
		assert.Empty(t, p.Intents)
	}
}
