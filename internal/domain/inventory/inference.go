package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// Categorías inferibles.
const (
	CategoryGrocery     = "Grocery"
	CategoryElectronics = "Electronics"
	CategoryFurniture   = "Furniture"
	CategoryStationery  = "Stationery"
	CategoryFashion     = "Fashion"
)

// highValueElectronics precio a partir del cual un electrónico usa umbral de reorden reducido.
var highValueElectronics = decimal.NewFromInt(1000)

type keywordGroup struct {
	category string
	keywords []string
}

// El orden importa: gana el primer grupo con coincidencia.
var keywordGroups = []keywordGroup{
	{CategoryGrocery, []string{"apple", "banana", "mango", "milk", "rice", "bread", "sugar", "salt", "oil", "tea", "coffee"}},
	{CategoryElectronics, []string{"tv", "mobile", "phone", "laptop", "computer", "charger", "headphone", "camera", "tablet"}},
	{CategoryFurniture, []string{"chair", "table", "sofa", "bed", "furniture", "cupboard", "desk"}},
	{CategoryStationery, []string{"book", "pen", "pencil", "notebook", "eraser", "marker", "stationery"}},
	{CategoryFashion, []string{"shirt", "jeans", "tshirt", "jacket", "dress", "clothes"}},
}

// InferCategory clasifica un nombre por palabras clave contenidas (sin distinguir mayúsculas).
func InferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.category
			}
		}
	}
	return entity.DefaultCategory
}

// InferReorderThreshold umbral de reorden base por categoría.
func InferReorderThreshold(category string, price decimal.Decimal) int64 {
	switch category {
	case CategoryGrocery:
		return 10
	case CategoryElectronics:
		if price.GreaterThan(highValueElectronics) {
			return 2
		}
		return 5
	case CategoryFurniture:
		return 3
	case CategoryStationery:
		return 5
	case CategoryFashion:
		return 4
	default:
		return 5
	}
}
