package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// StockReport datos del reporte de existencias.
type StockReport struct {
	Title          string
	GeneratedAt    time.Time
	CurrencySymbol string
	Items          []*entity.Item
	TotalValue     decimal.Decimal
	LowStockCount  int
}

// StockReportRenderer puerto de salida para renderizar el reporte (PDF u otro formato).
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report StockReport) ([]byte, error)
}
