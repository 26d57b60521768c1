package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest entrada para crear o actualizar un registro vía CRUD.
// Los campos numéricos se coercionan: ausentes o no numéricos → 0.
type ItemRequest struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Quantity FlexNumber `json:"quantity"`
	Price    FlexNumber `json:"price"`
	MinStock FlexNumber `json:"minStock"`
}

// ItemResponse salida de un registro. Mantiene los nombres de campo del frontend (_id, price, minStock).
type ItemResponse struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	MinStock  int64           `json:"minStock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
