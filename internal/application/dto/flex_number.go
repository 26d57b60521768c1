package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexNumber número tolerante: acepta número JSON, cadena numérica o null.
// Cualquier otro valor (texto libre, booleano, objeto) se interpreta como cero sin error.
type FlexNumber struct {
	Value decimal.Decimal
	Valid bool
}

// UnmarshalJSON nunca falla; el valor no numérico queda en cero e inválido.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	n.Value, n.Valid = decimal.Zero, false
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.Value, n.Valid = d, true
	return nil
}

// MarshalJSON serializa como número.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	return []byte(n.Value.String()), nil
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// Int trunca hacia cero; fuera del rango de int64 satura en el extremo correspondiente.
func (n FlexNumber) Int() int64 {
	t := n.Value.Truncate(0)
	switch {
	case t.GreaterThan(maxInt64):
		return math.MaxInt64
	case t.LessThan(minInt64):
		return math.MinInt64
	}
	return t.IntPart()
}

// Decimal devuelve el valor (cero si inválido).
func (n FlexNumber) Decimal() decimal.Decimal {
	return n.Value
}

// NewFlexNumber helper para tests y adaptadores.
func NewFlexNumber(v int64) FlexNumber {
	return FlexNumber{Value: decimal.NewFromInt(v), Valid: true}
}
