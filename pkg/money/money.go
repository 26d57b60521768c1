// Package money formatea montos decimales sin pasar por float64.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format devuelve symbol + el monto con dos decimales y comas de miles,
// p. ej. Format("₹", 1234567.5) = "₹1,234,567.50". El signo va delante del símbolo.
func Format(symbol string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}
	return sign + symbol + group(intPart) + "." + frac
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
