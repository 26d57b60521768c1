// Package memory implementa los puertos de persistencia en memoria del proceso.
// Útil en desarrollo (STORE_DRIVER=memory) y en tests; no sobrevive reinicios.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/inventory"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo guarda los registros en orden de creación. Devuelve copias para que
// el llamador nunca comparta memoria con el almacén.
type ItemRepo struct {
	mu    sync.RWMutex
	items []*entity.Item
	now   func() time.Time
}

// NewItemRepository construye el almacén vacío.
func NewItemRepository() *ItemRepo {
	return &ItemRepo{now: time.Now}
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	if item == nil || item.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(item.ID) >= 0 {
		return domain.ErrInvalidInput
	}
	now := r.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return clone(r.items[i]), nil
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID; la exclusión la aporta TxRunner.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) FindByExactName(_ context.Context, ref string) (*entity.Item, error) {
	return r.first(func(it *entity.Item) bool { return inventory.MatchesExactly(it.Name, ref) }), nil
}

func (r *ItemRepo) FindByNameFragment(_ context.Context, ref string) (*entity.Item, error) {
	return r.first(func(it *entity.Item) bool { return inventory.ContainsFragment(it.Name, ref) }), nil
}

func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	return r.filter(func(*entity.Item) bool { return true }), nil
}

func (r *ItemRepo) ListByCategory(_ context.Context, fragment string) ([]*entity.Item, error) {
	return r.filter(func(it *entity.Item) bool { return inventory.CategoryMatches(it.Category, fragment) }), nil
}

func (r *ItemRepo) ListBelowReorderThreshold(_ context.Context) ([]*entity.Item, error) {
	return r.filter(func(it *entity.Item) bool { return it.IsLowStock() }), nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(item.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	item.CreatedAt = r.items[i].CreatedAt
	item.UpdatedAt = r.now()
	r.items[i] = clone(item)
	return nil
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// indexOf requiere mu tomado.
func (r *ItemRepo) indexOf(id string) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (r *ItemRepo) first(match func(*entity.Item) bool) *entity.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if match(it) {
			return clone(it)
		}
	}
	return nil
}

func (r *ItemRepo) filter(match func(*entity.Item) bool) []*entity.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		if match(it) {
			out = append(out, clone(it))
		}
	}
	return out
}

func clone(it *entity.Item) *entity.Item {
	cp := *it
	return &cp
}

// TxRunner serializa las unidades de trabajo sobre el almacén en memoria.
// No hay rollback: una unidad que falla a mitad deja aplicado lo ya escrito.
type TxRunner struct {
	mu   sync.Mutex
	repo *ItemRepo
}

var _ repository.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el almacén dado.
func NewTxRunner(repo *ItemRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

// Run ejecuta fn con exclusión mutua respecto de otras unidades.
func (t *TxRunner) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.repo)
}
