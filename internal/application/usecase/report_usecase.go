package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ai/internal/application/assistant"
	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
)

// ReportUseCase arma el reporte de existencias y delega el render.
type ReportUseCase struct {
	repo     repository.ItemRepository
	renderer ports.StockReportRenderer
	currency string
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ItemRepository, renderer ports.StockReportRenderer, currency string) *ReportUseCase {
	return &ReportUseCase{repo: repo, renderer: renderer, currency: currency, now: time.Now}
}

// StockReport genera el documento con todos los registros, su valor total y cuántos están bajo el mínimo.
func (uc *ReportUseCase) StockReport(ctx context.Context) ([]byte, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar existencias: %w", err)
	}
	low := 0
	for _, it := range items {
		if it.IsLowStock() {
			low++
		}
	}
	doc, err := uc.renderer.RenderStockReport(ctx, ports.StockReport{
		Title:          "Inventory stock report",
		GeneratedAt:    uc.now(),
		CurrencySymbol: uc.currency,
		Items:          items,
		TotalValue:     assistant.TotalValue(items),
		LowStockCount:  low,
	})
	if err != nil {
		return nil, fmt.Errorf("render reporte: %w", err)
	}
	return doc, nil
}
