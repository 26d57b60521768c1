package assistant

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/pkg/money"
)

// Formatter produce las líneas de resultado que ve (o escucha) el usuario.
// Los montos llevan el símbolo de moneda configurado y agrupación de miles.
type Formatter struct {
	currency string
	upper    cases.Caser
}

// NewFormatter construye el formateador. currency vacío → "₹".
func NewFormatter(currency string) *Formatter {
	if currency == "" {
		currency = "₹"
	}
	return &Formatter{
		currency: currency,
		upper:    cases.Upper(language.English),
	}
}

// Money formatea con dos decimales y separador de miles.
func (f *Formatter) Money(d decimal.Decimal) string {
	return money.Format(f.currency, d)
}

func refOr(ref string) string {
	if r := strings.TrimSpace(ref); r != "" {
		return r
	}
	return "that item"
}

// ── add_item ──────────────────────────────────────────────────────────────────

func (f *Formatter) Restocked(it *entity.Item, added int64) string {
	return fmt.Sprintf("🔄 Updated %s: +%d, now %d in stock (%s each).", it.Name, added, it.Quantity, f.Money(it.UnitPrice))
}

func (f *Formatter) Created(it *entity.Item) string {
	return fmt.Sprintf("✅ Added %d %s(s) in %s at %s.", it.Quantity, it.Name, it.Category, f.Money(it.UnitPrice))
}

func (f *Formatter) MissingItemName() string {
	return "❓ Tell me which item to add."
}

// ── mutaciones sobre registros existentes ─────────────────────────────────────

func (f *Formatter) QuantitySet(it *entity.Item, old int64) string {
	return fmt.Sprintf("📊 Updated %s quantity: %d → %d.", it.Name, old, it.Quantity)
}

func (f *Formatter) Increased(it *entity.Item, by int64) string {
	return fmt.Sprintf("🔼 Increased %s by %d. Now %d × %s = %s.",
		it.Name, by, it.Quantity, f.Money(it.UnitPrice), f.Money(it.StockValue()))
}

func (f *Formatter) Reduced(it *entity.Item, by int64) string {
	return fmt.Sprintf("🔽 Reduced %s by %d. Remaining: %d × %s = %s.",
		it.Name, by, it.Quantity, f.Money(it.UnitPrice), f.Money(it.StockValue()))
}

func (f *Formatter) Exhausted(it *entity.Item) string {
	return fmt.Sprintf("🧹 Removed all %s(s) from stock.", it.Name)
}

func (f *Formatter) Deleted(it *entity.Item) string {
	return fmt.Sprintf("🧹 Deleted %s completely from stock.", it.Name)
}

func (f *Formatter) PriceSet(it *entity.Item, old decimal.Decimal) string {
	return fmt.Sprintf("💸 Updated %s price: %s → %s.", it.Name, f.Money(old), f.Money(it.UnitPrice))
}

func (f *Formatter) NegativeQuantity(ref string) string {
	return fmt.Sprintf("❌ Quantity for %s can't be negative.", refOr(ref))
}

func (f *Formatter) NegativePrice(ref string) string {
	return fmt.Sprintf("❌ Price for %s can't be negative.", refOr(ref))
}

func (f *Formatter) PriceTooLarge(ref string) string {
	return fmt.Sprintf("❌ Price for %s is too large.", refOr(ref))
}

func (f *Formatter) QuantityTooLarge(ref string) string {
	return fmt.Sprintf("❌ That quantity of %s is too large to track.", refOr(ref))
}

// Rejected el almacén rechazó los valores de la intención; nada se aplicó.
func (f *Formatter) Rejected(action entity.Action, ref string) string {
	if strings.TrimSpace(ref) == "" {
		return fmt.Sprintf("❌ Couldn't apply %s, the values were rejected.", action)
	}
	return fmt.Sprintf("❌ Couldn't apply %s for %s, the values were rejected.", action, ref)
}

// NotFound línea de referencia sin resolver, con la redacción propia de cada acción.
func (f *Formatter) NotFound(action entity.Action, ref string) string {
	r := refOr(ref)
	switch action {
	case entity.ActionUpdateQuantity:
		return fmt.Sprintf("❌ Couldn't find %s.", r)
	case entity.ActionIncreaseQuantity:
		return fmt.Sprintf("❌ No %s found.", r)
	case entity.ActionReduceQuantity, entity.ActionDeleteItem:
		return fmt.Sprintf("❌ No %s found to delete.", r)
	case entity.ActionShowItem:
		return fmt.Sprintf("❌ No item named %s.", r)
	default:
		return fmt.Sprintf("❌ Can't find %s.", r)
	}
}

// ── consultas ─────────────────────────────────────────────────────────────────

func (f *Formatter) Inventory(items []*entity.Item) string {
	if len(items) == 0 {
		return "📭 Inventory is empty."
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s (%s) — %d/%d × %s",
			it.Name, it.Category, it.Quantity, it.ReorderThreshold, f.Money(it.UnitPrice)))
	}
	return "📦 Full Inventory:\n" + strings.Join(lines, "\n")
}

func (f *Formatter) Category(fragment string, items []*entity.Item) string {
	fragment = strings.TrimSpace(fragment)
	if len(items) == 0 {
		return fmt.Sprintf("❌ No items found in %s.", fragment)
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s — %d/%d × %s",
			it.Name, it.Quantity, it.ReorderThreshold, f.Money(it.UnitPrice)))
	}
	return fmt.Sprintf("📁 %s Items:\n%s", f.upper.String(fragment), strings.Join(lines, "\n"))
}

func (f *Formatter) ItemSummary(it *entity.Item) string {
	return fmt.Sprintf("📦 %s — %d/%d × %s (%s)",
		it.Name, it.Quantity, it.ReorderThreshold, f.Money(it.UnitPrice), it.Category)
}

func (f *Formatter) Price(it *entity.Item) string {
	return fmt.Sprintf("💸 The price of %s is %s.", it.Name, f.Money(it.UnitPrice))
}

func (f *Formatter) LowStock(items []*entity.Item) string {
	if len(items) == 0 {
		return "✅ All items are sufficiently stocked!"
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s: %d/%d", it.Name, it.Quantity, it.ReorderThreshold))
	}
	return "⚠️ Low stock alert:\n" + strings.Join(lines, "\n")
}

func (f *Formatter) TotalValue(total decimal.Decimal) string {
	return fmt.Sprintf("💰 Total inventory value is %s.", f.Money(total))
}

func (f *Formatter) Help() string {
	return strings.Join([]string{
		"🤖 I can help you with:",
		"• Add / Delete / Update items",
		"• Show item details or price",
		"• Check low stock",
		"• Calculate total value",
		"• Or just chat casually 😄",
	}, "\n")
}

// ── fallas ────────────────────────────────────────────────────────────────────

func (f *Formatter) Failure(action entity.Action, ref string) string {
	if strings.TrimSpace(ref) == "" {
		return fmt.Sprintf("⚠️ Couldn't complete %s right now, the inventory store is unavailable.", action)
	}
	return fmt.Sprintf("⚠️ Couldn't complete %s for %s right now, the inventory store is unavailable.", action, ref)
}

func (f *Formatter) Skipped(n int) string {
	return fmt.Sprintf("⏸️ %d remaining instruction(s) were not applied.", n)
}
