package repository

import (
	"context"

	"github.com/jhoicas/inventario-ai/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el libro de existencias (DIP).
// Los métodos Get/Find devuelven (nil, nil) cuando no hay coincidencia.
// El orden de iteración es el de creación; los listados y búsquedas lo respetan.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate obtiene el registro y lo bloquea hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// FindByExactName coincidencia completa sin distinguir mayúsculas, tolerando una "s" final.
	FindByExactName(ctx context.Context, ref string) (*entity.Item, error)
	// FindByNameFragment primer registro cuyo nombre contiene ref (sin distinguir mayúsculas).
	FindByNameFragment(ctx context.Context, ref string) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	ListByCategory(ctx context.Context, fragment string) ([]*entity.Item, error)
	ListBelowReorderThreshold(ctx context.Context) ([]*entity.Item, error)
	// Update persiste todos los campos mutables; domain.ErrNotFound si el ID no existe.
	Update(ctx context.Context, item *entity.Item) error
	// Delete elimina por ID; domain.ErrNotFound si el ID no existe.
	Delete(ctx context.Context, id string) error
}

// TxRunner ejecuta fn como unidad atómica con un repositorio atado a esa unidad.
// Garantiza atomicidad por intención en el motor del asistente.
type TxRunner interface {
	Run(ctx context.Context, fn func(items ItemRepository) error) error
}
