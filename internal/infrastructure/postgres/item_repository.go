package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, quantity, unit_price, reorder_threshold, created_at, updated_at`

// El desempate por id mantiene estable el orden de creación cuando dos filas comparten created_at.
const itemOrder = ` ORDER BY created_at, id`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q   Querier
	now func() time.Time
}

// NewItemRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q, now: func() time.Time { return time.Now().UTC() }}
}

// Create persiste un nuevo registro; completa CreatedAt/UpdatedAt.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	now := r.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	query := `INSERT INTO inventory_items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Quantity, item.UnitPrice,
		item.ReorderThreshold, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) || isRejectedValue(err) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.one(ctx, "get item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el registro y lo bloquea hasta el fin de la transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.one(ctx, "lock item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// FindByExactName coincidencia completa sin mayúsculas, tolerando una "s" final en cualquiera de los dos lados.
func (r *ItemRepo) FindByExactName(ctx context.Context, ref string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE lower(name) = lower($1) OR lower(name) = lower($1) || 's' OR lower(name) || 's' = lower($1)` +
		itemOrder + ` LIMIT 1`
	return r.one(ctx, "find item by name", query, ref)
}

// FindByNameFragment primer registro cuyo nombre contiene ref. strpos evita interpretar % y _ de LIKE.
func (r *ItemRepo) FindByNameFragment(ctx context.Context, ref string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE strpos(lower(name), lower($1)) > 0` + itemOrder + ` LIMIT 1`
	return r.one(ctx, "find item by fragment", query, ref)
}

func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	return r.many(ctx, "list items", `SELECT `+itemColumns+` FROM inventory_items`+itemOrder)
}

// ListByCategory fragmento vacío devuelve todo.
func (r *ItemRepo) ListByCategory(ctx context.Context, fragment string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE strpos(lower(category), lower($1)) > 0` + itemOrder
	return r.many(ctx, "list items by category", query, fragment)
}

func (r *ItemRepo) ListBelowReorderThreshold(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE quantity < reorder_threshold` + itemOrder
	return r.many(ctx, "list low stock", query)
}

// Update persiste los campos mutables. domain.ErrNotFound si el ID no existe.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = r.now()
	query := `
		UPDATE inventory_items SET name = $2, category = $3, quantity = $4, unit_price = $5, reorder_threshold = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Quantity, item.UnitPrice, item.ReorderThreshold, item.UpdatedAt,
	)
	if err != nil {
		if isRejectedValue(err) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina por ID. domain.ErrNotFound si el ID no existe.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) one(ctx context.Context, op, query string, args ...any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Category, &it.Quantity, &it.UnitPrice,
		&it.ReorderThreshold, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func (r *ItemRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]*entity.Item, 0)
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &it.Quantity, &it.UnitPrice,
			&it.ReorderThreshold, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
