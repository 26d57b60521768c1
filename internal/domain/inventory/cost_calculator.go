package inventory

import "github.com/shopspring/decimal"

// PriceScale decimales con que se guarda un precio unitario; coincide con NUMERIC(14,4).
const PriceScale = 4

// MaxUnitPrice cota exclusiva del precio unitario almacenable (10^10).
var MaxUnitPrice = decimal.New(1, 10)

// NormalizePrice redondea el precio a PriceScale decimales. Ambos almacenes guardan
// el valor ya redondeado, así que reportan el mismo precio.
func NormalizePrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(PriceScale)
}

// PriceInRange indica si el precio puede guardarse (0 <= p < MaxUnitPrice).
func PriceInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThan(MaxUnitPrice)
}

// WeightedAveragePrice implementa el precio unitario promedio ponderado al agregar unidades.
// NuevoPrecio = ((CantActual * PrecioActual) + (CantEntrada * PrecioEntrada)) / (CantActual + CantEntrada)
// Si la suma de cantidades no es positiva el precio actual se conserva.
func WeightedAveragePrice(cantActual int64, precioActual decimal.Decimal, cantEntrada int64, precioEntrada decimal.Decimal) decimal.Decimal {
	sum := cantActual + cantEntrada
	if sum <= 0 {
		return precioActual
	}
	num := precioActual.Mul(decimal.NewFromInt(cantActual)).
		Add(precioEntrada.Mul(decimal.NewFromInt(cantEntrada)))
	return num.Div(decimal.NewFromInt(sum))
}

// RestockPrice decide el precio resultante de un add_item sobre un registro existente:
// promedio ponderado si ambos precios son positivos, el entrante si el actual es cero,
// y el actual en cualquier otro caso. El resultado queda redondeado a PriceScale.
func RestockPrice(cantActual int64, precioActual decimal.Decimal, cantEntrada int64, precioEntrada decimal.Decimal) decimal.Decimal {
	switch {
	case precioEntrada.IsPositive() && precioActual.IsPositive():
		return NormalizePrice(WeightedAveragePrice(cantActual, precioActual, cantEntrada, precioEntrada))
	case precioEntrada.IsPositive() && precioActual.IsZero():
		return NormalizePrice(precioEntrada)
	default:
		return precioActual
	}
}
