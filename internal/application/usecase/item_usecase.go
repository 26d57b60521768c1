package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ai/internal/application/dto"
	"github.com/jhoicas/inventario-ai/internal/domain"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/internal/domain/inventory"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD sobre el libro de existencias (pantalla de inventario).
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// List devuelve todos los registros en orden de creación.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// Create crea un registro. Cantidad, precio y mínimo ausentes valen 0; categoría ausente, General.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	item := &entity.Item{ID: uuid.New().String(), Name: name}
	if err := applyRequest(item, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Update reemplaza los campos con la misma coerción que Create. Un nombre vacío conserva el actual.
// Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		item.Name = name
	}
	if err := applyRequest(item, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, item); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Delete elimina por ID; domain.ErrNotFound si no existe.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyRequest(item *entity.Item, in dto.ItemRequest) error {
	item.Category = strings.TrimSpace(in.Category)
	if item.Category == "" {
		item.Category = entity.DefaultCategory
	}
	item.Quantity = in.Quantity.Int()
	item.UnitPrice = inventory.NormalizePrice(in.Price.Decimal())
	item.ReorderThreshold = in.MinStock.Int()

	switch {
	case item.Quantity < 0:
		return domain.ErrNegativeQuantity
	case item.UnitPrice.IsNegative():
		return domain.ErrNegativePrice
	case !inventory.PriceInRange(item.UnitPrice):
		return fmt.Errorf("%w: price fuera de rango", domain.ErrInvalidInput)
	case item.ReorderThreshold < 0:
		return fmt.Errorf("%w: minStock no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		Price:     it.UnitPrice,
		MinStock:  it.ReorderThreshold,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
