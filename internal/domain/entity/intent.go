package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Action conjunto cerrado de operaciones que el modelo puede solicitar.
type Action uint8

const (
	ActionUnknown Action = iota
	ActionAddItem
	ActionUpdateQuantity
	ActionIncreaseQuantity
	ActionReduceQuantity
	ActionDeleteItem
	ActionUpdatePrice
	ActionShowItems
	ActionShowCategory
	ActionShowItem
	ActionShowPrice
	ActionLowStock
	ActionTotalValue
	ActionHelp
)

var actionTags = [...]string{
	ActionUnknown:          "unknown",
	ActionAddItem:          "add_item",
	ActionUpdateQuantity:   "update_quantity",
	ActionIncreaseQuantity: "increase_quantity",
	ActionReduceQuantity:   "reduce_quantity",
	ActionDeleteItem:       "delete_item",
	ActionUpdatePrice:      "update_price",
	ActionShowItems:        "show_items",
	ActionShowCategory:     "show_category",
	ActionShowItem:         "show_item",
	ActionShowPrice:        "show_price",
	ActionLowStock:         "low_stock",
	ActionTotalValue:       "total_value",
	ActionHelp:             "help",
}

// ParseAction convierte la etiqueta del modelo en Action. Etiquetas desconocidas → ActionUnknown, false.
func ParseAction(tag string) (Action, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for a, t := range actionTags {
		if t == tag && Action(a) != ActionUnknown {
			return Action(a), true
		}
	}
	return ActionUnknown, false
}

// String devuelve la etiqueta de la acción.
func (a Action) String() string {
	if int(a) < len(actionTags) {
		return actionTags[a]
	}
	return actionTags[ActionUnknown]
}

// Mutates indica si la acción puede modificar el almacén.
func (a Action) Mutates() bool {
	switch a {
	case ActionAddItem, ActionUpdateQuantity, ActionIncreaseQuantity,
		ActionReduceQuantity, ActionDeleteItem, ActionUpdatePrice:
		return true
	}
	return false
}

// Intent es una instrucción estructurada extraída de la respuesta del modelo.
// Los campos numéricos ausentes o no numéricos llegan como cero.
type Intent struct {
	Action   Action
	Tag      string // etiqueta original, útil en logs cuando Action es desconocida
	ItemRef  string
	Quantity int64
	Price    decimal.Decimal
	Category string
	MinStock int64
}
