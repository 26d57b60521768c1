// Package assistant contiene el motor que aplica las intenciones del modelo sobre
// el libro de existencias y el orquestador de la conversación.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/inventory"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
	"github.com/jhoicas/inventario-ai/pkg/logger"
)

// Executor aplica intenciones una a una. No guarda estado entre lotes: cada
// intención vuelve a resolver su registro dentro de su propia unidad atómica.
type Executor struct {
	items   repository.ItemRepository
	tx      repository.TxRunner
	format  *Formatter
	metrics ports.AssistantMetrics
	log     *logger.Logger
	newID   func() string
}

// NewExecutor construye el motor. metrics y log pueden ser nil.
func NewExecutor(
	items repository.ItemRepository,
	tx repository.TxRunner,
	format *Formatter,
	metrics ports.AssistantMetrics,
	log *logger.Logger,
) *Executor {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if format == nil {
		format = NewFormatter("")
	}
	return &Executor{
		items:   items,
		tx:      tx,
		format:  format,
		metrics: metrics,
		log:     log.Component("executor"),
		newID:   uuid.NewString,
	}
}

// ExecuteBatch aplica el lote en orden y devuelve una línea por intención.
// Ante una falla de persistencia se detiene: las intenciones previas quedan
// confirmadas y las restantes se informan como no aplicadas.
func (e *Executor) ExecuteBatch(ctx context.Context, intents []entity.Intent) ([]string, error) {
	lines := make([]string, 0, len(intents))
	for i, in := range intents {
		line, err := e.Execute(ctx, in)
		lines = append(lines, line)
		if err != nil {
			if rest := len(intents) - i - 1; rest > 0 {
				lines = append(lines, e.format.Skipped(rest))
			}
			return lines, err
		}
	}
	return lines, nil
}

// Execute aplica una intención. Las fallas blandas (no encontrado, validación)
// van en la línea; solo las fallas del almacén devuelven error (envuelto en domain.ErrPersistence).
func (e *Executor) Execute(ctx context.Context, in entity.Intent) (string, error) {
	start := time.Now()
	line, outcome, err := e.dispatch(ctx, in)
	if errors.Is(err, domain.ErrInvalidInput) {
		// El almacén rechazó los valores (restricción CHECK o UNIQUE): la unidad se revirtió.
		e.log.Warn().Err(err).Str("action", in.Action.String()).Str("item", in.ItemRef).Msg("intención rechazada por el almacén")
		line, outcome, err = e.format.Rejected(in.Action, in.ItemRef), ports.OutcomeRejected, nil
	}
	if err != nil {
		outcome = ports.OutcomeFailed
		line = e.format.Failure(in.Action, in.ItemRef)
		err = fmt.Errorf("%w: %s: %w", domain.ErrPersistence, in.Action, err)
		e.log.Error().Err(err).Str("action", in.Action.String()).Str("item", in.ItemRef).Msg("intención abortada")
	} else {
		e.log.Debug().Str("action", in.Action.String()).Str("item", in.ItemRef).Str("outcome", outcome).Msg("intención procesada")
	}
	e.metrics.ObserveIntent(in.Action.String(), outcome, time.Since(start))
	return line, err
}

func (e *Executor) dispatch(ctx context.Context, in entity.Intent) (string, string, error) {
	switch in.Action {
	case entity.ActionAddItem:
		return e.addItem(ctx, in)
	case entity.ActionUpdateQuantity:
		return e.updateQuantity(ctx, in)
	case entity.ActionIncreaseQuantity:
		return e.increaseQuantity(ctx, in)
	case entity.ActionReduceQuantity, entity.ActionDeleteItem:
		return e.reduceOrDelete(ctx, in)
	case entity.ActionUpdatePrice:
		return e.updatePrice(ctx, in)
	case entity.ActionShowItems:
		return e.showItems(ctx)
	case entity.ActionShowCategory:
		return e.showCategory(ctx, in)
	case entity.ActionShowItem, entity.ActionShowPrice:
		return e.showItem(ctx, in)
	case entity.ActionLowStock:
		return e.lowStock(ctx)
	case entity.ActionTotalValue:
		return e.totalValue(ctx)
	case entity.ActionHelp, entity.ActionUnknown:
		return e.format.Help(), ports.OutcomeQuery, nil
	}
	return e.format.Help(), ports.OutcomeQuery, nil
}

// mutateFunc recibe el registro resuelto y bloqueado, o nil si no hubo coincidencia.
type mutateFunc func(repo repository.ItemRepository, found *entity.Item) (line, outcome string, err error)

// mutate resuelve ref y aplica fn dentro de una unidad atómica.
func (e *Executor) mutate(ctx context.Context, ref string, fn mutateFunc) (line, outcome string, err error) {
	err = e.tx.Run(ctx, func(repo repository.ItemRepository) error {
		found, err := inventory.Resolve(ctx, repo, ref)
		if err != nil {
			return err
		}
		if found != nil {
			// Otro comando pudo borrarlo entre la resolución y el bloqueo.
			if found, err = repo.GetForUpdate(ctx, found.ID); err != nil {
				return err
			}
		}
		line, outcome, err = fn(repo, found)
		return err
	})
	return line, outcome, err
}

func (e *Executor) addItem(ctx context.Context, in entity.Intent) (string, string, error) {
	name := strings.TrimSpace(in.ItemRef)
	switch {
	case name == "":
		return e.format.MissingItemName(), ports.OutcomeRejected, nil
	case in.Quantity < 0:
		return e.format.NegativeQuantity(name), ports.OutcomeRejected, nil
	case in.Price.IsNegative():
		return e.format.NegativePrice(name), ports.OutcomeRejected, nil
	case !inventory.PriceInRange(in.Price):
		return e.format.PriceTooLarge(name), ports.OutcomeRejected, nil
	}

	return e.mutate(ctx, name, func(repo repository.ItemRepository, found *entity.Item) (string, string, error) {
		if found != nil {
			if in.Quantity > math.MaxInt64-found.Quantity {
				return e.format.QuantityTooLarge(found.Name), ports.OutcomeRejected, nil
			}
			found.UnitPrice = inventory.RestockPrice(found.Quantity, found.UnitPrice, in.Quantity, in.Price)
			found.Quantity += in.Quantity
			if found.ReorderThreshold <= 0 {
				found.ReorderThreshold = reorderThreshold(in, found.Category, in.Price)
			}
			if err := repo.Update(ctx, found); err != nil {
				return "", "", err
			}
			return e.format.Restocked(found, in.Quantity), ports.OutcomeApplied, nil
		}

		category := strings.TrimSpace(in.Category)
		if category == "" {
			category = inventory.InferCategory(name)
		}
		item := &entity.Item{
			ID:               e.newID(),
			Name:             name,
			Category:         category,
			Quantity:         in.Quantity,
			UnitPrice:        inventory.NormalizePrice(in.Price),
			ReorderThreshold: reorderThreshold(in, category, in.Price),
		}
		if err := repo.Create(ctx, item); err != nil {
			return "", "", err
		}
		return e.format.Created(item), ports.OutcomeApplied, nil
	})
}

// reorderThreshold umbral explícito del modelo o, en su defecto, el inferido.
func reorderThreshold(in entity.Intent, category string, price decimal.Decimal) int64 {
	if in.MinStock > 0 {
		return in.MinStock
	}
	return inventory.InferReorderThreshold(category, price)
}

func (e *Executor) updateQuantity(ctx context.Context, in entity.Intent) (string, string, error) {
	if in.Quantity < 0 {
		return e.format.NegativeQuantity(in.ItemRef), ports.OutcomeRejected, nil
	}
	return e.mutate(ctx, in.ItemRef, func(repo repository.ItemRepository, found *entity.Item) (string, string, error) {
		if found == nil {
			return e.format.NotFound(in.Action, in.ItemRef), ports.OutcomeNotFound, nil
		}
		old := found.Quantity
		found.Quantity = in.Quantity
		if err := repo.Update(ctx, found); err != nil {
			return "", "", err
		}
		return e.format.QuantitySet(found, old), ports.OutcomeApplied, nil
	})
}

func (e *Executor) increaseQuantity(ctx context.Context, in entity.Intent) (string, string, error) {
	if in.Quantity < 0 {
		return e.format.NegativeQuantity(in.ItemRef), ports.OutcomeRejected, nil
	}
	return e.mutate(ctx, in.ItemRef, func(repo repository.ItemRepository, found *entity.Item) (string, string, error) {
		if found == nil {
			return e.format.NotFound(in.Action, in.ItemRef), ports.OutcomeNotFound, nil
		}
		if in.Quantity > math.MaxInt64-found.Quantity {
			return e.format.QuantityTooLarge(found.Name), ports.OutcomeRejected, nil
		}
		found.Quantity += in.Quantity
		if err := repo.Update(ctx, found); err != nil {
			return "", "", err
		}
		return e.format.Increased(found, in.Quantity), ports.OutcomeApplied, nil
	})
}

// reduceOrDelete: con cantidad positiva resta y borra al agotarse; sin cantidad borra el registro.
func (e *Executor) reduceOrDelete(ctx context.Context, in entity.Intent) (string, string, error) {
	if in.Quantity < 0 {
		return e.format.NegativeQuantity(in.ItemRef), ports.OutcomeRejected, nil
	}
	return e.mutate(ctx, in.ItemRef, func(repo repository.ItemRepository, found *entity.Item) (string, string, error) {
		if found == nil {
			return e.format.NotFound(in.Action, in.ItemRef), ports.OutcomeNotFound, nil
		}
		if in.Quantity == 0 {
			if err := repo.Delete(ctx, found.ID); err != nil {
				return "", "", err
			}
			return e.format.Deleted(found), ports.OutcomeApplied, nil
		}
		if found.Quantity <= in.Quantity {
			if err := repo.Delete(ctx, found.ID); err != nil {
				return "", "", err
			}
			return e.format.Exhausted(found), ports.OutcomeApplied, nil
		}
		found.Quantity -= in.Quantity
		if err := repo.Update(ctx, found); err != nil {
			return "", "", err
		}
		return e.format.Reduced(found, in.Quantity), ports.OutcomeApplied, nil
	})
}

func (e *Executor) updatePrice(ctx context.Context, in entity.Intent) (string, string, error) {
	if in.Price.IsNegative() {
		return e.format.NegativePrice(in.ItemRef), ports.OutcomeRejected, nil
	}
	if !inventory.PriceInRange(in.Price) {
		return e.format.PriceTooLarge(in.ItemRef), ports.OutcomeRejected, nil
	}
	return e.mutate(ctx, in.ItemRef, func(repo repository.ItemRepository, found *entity.Item) (string, string, error) {
		if found == nil {
			return e.format.NotFound(in.Action, in.ItemRef), ports.OutcomeNotFound, nil
		}
		old := found.UnitPrice
		found.UnitPrice = inventory.NormalizePrice(in.Price)
		if err := repo.Update(ctx, found); err != nil {
			return "", "", err
		}
		return e.format.PriceSet(found, old), ports.OutcomeApplied, nil
	})
}

// ── consultas (sin mutación, fuera de transacción) ───────────────────────────

func (e *Executor) showItems(ctx context.Context) (string, string, error) {
	items, err := e.items.List(ctx)
	if err != nil {
		return "", "", err
	}
	return e.format.Inventory(items), ports.OutcomeQuery, nil
}

func (e *Executor) showCategory(ctx context.Context, in entity.Intent) (string, string, error) {
	items, err := e.items.ListByCategory(ctx, strings.TrimSpace(in.Category))
	if err != nil {
		return "", "", err
	}
	return e.format.Category(in.Category, items), ports.OutcomeQuery, nil
}

func (e *Executor) showItem(ctx context.Context, in entity.Intent) (string, string, error) {
	found, err := inventory.Resolve(ctx, e.items, in.ItemRef)
	if err != nil {
		return "", "", err
	}
	if found == nil {
		return e.format.NotFound(in.Action, in.ItemRef), ports.OutcomeNotFound, nil
	}
	if in.Action == entity.ActionShowPrice {
		return e.format.Price(found), ports.OutcomeQuery, nil
	}
	return e.format.ItemSummary(found), ports.OutcomeQuery, nil
}

func (e *Executor) lowStock(ctx context.Context) (string, string, error) {
	items, err := e.items.ListBelowReorderThreshold(ctx)
	if err != nil {
		return "", "", err
	}
	return e.format.LowStock(items), ports.OutcomeQuery, nil
}

func (e *Executor) totalValue(ctx context.Context) (string, string, error) {
	items, err := e.items.List(ctx)
	if err != nil {
		return "", "", err
	}
	return e.format.TotalValue(TotalValue(items)), ports.OutcomeQuery, nil
}

// TotalValue Σ cantidad × precio unitario.
func TotalValue(items []*entity.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.StockValue())
	}
	return total
}
