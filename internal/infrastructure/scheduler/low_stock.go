// Package scheduler tareas periódicas sobre el libro de existencias.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jhoicas/inventario-ai/internal/domain/repository"
	"github.com/jhoicas/inventario-ai/pkg/logger"
)

// LowStockGauge destino opcional del conteo (métricas).
type LowStockGauge interface {
	SetLowStock(n int)
}

// LowStockWatcher revisa periódicamente los registros bajo su umbral de reposición
// y los reporta en el log y en la métrica.
type LowStockWatcher struct {
	scheduler gocron.Scheduler
	items     repository.ItemRepository
	gauge     LowStockGauge
	log       *logger.Logger
	timeout   time.Duration
}

// NewLowStockWatcher registra el job con el intervalo dado. gauge puede ser nil.
func NewLowStockWatcher(items repository.ItemRepository, gauge LowStockGauge, log *logger.Logger, interval time.Duration) (*LowStockWatcher, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("intervalo inválido: %s", interval)
	}
	if log == nil {
		log = logger.Nop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("crear scheduler: %w", err)
	}
	w := &LowStockWatcher{
		scheduler: s,
		items:     items,
		gauge:     gauge,
		log:       log.Component("low-stock"),
		timeout:   30 * time.Second,
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.run),
		gocron.WithName("low-stock-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("registrar job: %w", err)
	}
	return w, nil
}

// Start arranca el scheduler en segundo plano.
func (w *LowStockWatcher) Start() {
	w.log.Info().Msg("revisión de existencias bajas programada")
	w.scheduler.Start()
}

// Stop espera a que termine la ejecución en curso.
func (w *LowStockWatcher) Stop() error {
	return w.scheduler.Shutdown()
}

func (w *LowStockWatcher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if _, err := w.Check(ctx); err != nil {
		w.log.Error().Err(err).Msg("revisión de existencias bajas falló")
	}
}

// Check hace una revisión y devuelve cuántos registros están bajo el umbral.
func (w *LowStockWatcher) Check(ctx context.Context) (int, error) {
	low, err := w.items.ListBelowReorderThreshold(ctx)
	if err != nil {
		return 0, fmt.Errorf("listar existencias bajas: %w", err)
	}
	if w.gauge != nil {
		w.gauge.SetLowStock(len(low))
	}
	for _, it := range low {
		w.log.Warn().
			Str("item_id", it.ID).
			Str("name", it.Name).
			Int64("quantity", it.Quantity).
			Int64("reorder_threshold", it.ReorderThreshold).
			Msg("existencia bajo el mínimo")
	}
	if len(low) == 0 {
		w.log.Debug().Msg("sin existencias bajas")
	}
	return len(low), nil
}
