package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory categoría genérica cuando no se indica ni se infiere otra.
const DefaultCategory = "General"

// Item representa un registro del libro de existencias.
// UnitPrice es promedio ponderado cuando se agregan unidades a un registro existente.
// ReorderThreshold (minStock) se fija una vez al crear y solo se usa para alertas de stock bajo.
type Item struct {
	ID               string
	Name             string
	Category         string
	Quantity         int64
	UnitPrice        decimal.Decimal
	ReorderThreshold int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StockValue devuelve Quantity × UnitPrice.
func (i *Item) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// IsLowStock indica si la cantidad está por debajo del umbral de reorden.
func (i *Item) IsLowStock() bool {
	return i.Quantity < i.ReorderThreshold
}
