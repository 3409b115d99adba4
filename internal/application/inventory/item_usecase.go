package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/application/validation"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD de items. Toda escritura que cambia el stock registra
// el movimiento derivado en la misma transacción (TxRunner).
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	validate *validator.Validate
	observer MovementObserver
	now      func() time.Time
}

// NewItemUseCase construye el caso de uso. observer puede ser nil.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, observer MovementObserver) *ItemUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &ItemUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		validate: validation.New(),
		observer: observer,
		now:      time.Now,
	}
}

// List devuelve todos los items. Una lista vacía no es error en esta capa.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// GetByID obtiene un item. IDs que no son UUID se tratan como inexistentes.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Create valida y persiste un item nuevo. Si el stock inicial es > 0 registra una entrada
// por ese total en la misma transacción; con stock inicial 0 no hay movimiento.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(uc.validate, in); err != nil {
		return nil, err
	}
	if err := requireDecimals(in); err != nil {
		return nil, err
	}
	unit, err := entity.ParseUnitOfMeasure(in.UnitOfMeasure)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	item := &entity.Item{
		ID:            uuid.New().String(),
		ProductName:   strings.TrimSpace(in.ProductName),
		UnitOfMeasure: unit,
		AverageCost:   *in.AverageCost,
		SaleValue:     *in.SaleValue,
		StockQuantity: *in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	var movement *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		movement = inventory.DeriveMovement(item.ID, decimal.Zero, item.StockQuantity, now)
		if movement == nil {
			return nil
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	if movement != nil {
		uc.observer.ObserveMovement(movement)
	}
	return toItemResponse(item), nil
}

// Update aplica solo los campos presentes en el patch. Bloquea la fila del item (FOR UPDATE),
// compara el stock anterior con el nuevo y registra el movimiento derivado si cambió.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	if err := validation.Struct(uc.validate, in); err != nil {
		return nil, err
	}
	var unit *entity.UnitOfMeasure
	if in.UnitOfMeasure != nil {
		u, err := entity.ParseUnitOfMeasure(*in.UnitOfMeasure)
		if err != nil {
			return nil, err
		}
		unit = &u
	}

	var (
		updated  *entity.Item
		movement *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		previousStock := item.StockQuantity
		applyPatch(item, in, unit)
		if err := item.Validate(); err != nil {
			return err
		}
		now := uc.now().UTC()
		item.UpdatedAt = now
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		movement = inventory.DeriveMovement(item.ID, previousStock, item.StockQuantity, now)
		if movement != nil {
			if err := movRepo.Create(ctx, movement); err != nil {
				return err
			}
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	if movement != nil {
		uc.observer.ObserveMovement(movement)
	}
	return toItemResponse(updated), nil
}

// Delete elimina primero el historial de movimientos del item y luego el item, en una transacción.
// Devuelve el estado del item antes de borrarlo.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	var deleted *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if _, err := movRepo.DeleteByItem(ctx, id); err != nil {
			return err
		}
		if err := itemRepo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(deleted), nil
}

func applyPatch(item *entity.Item, in dto.UpdateItemRequest, unit *entity.UnitOfMeasure) {
	if in.ProductName != nil {
		item.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if unit != nil {
		item.UnitOfMeasure = *unit
	}
	if in.AverageCost != nil {
		item.AverageCost = *in.AverageCost
	}
	if in.SaleValue != nil {
		item.SaleValue = *in.SaleValue
	}
	if in.StockQuantity != nil {
		item.StockQuantity = *in.StockQuantity
	}
}

func requireDecimals(in dto.CreateItemRequest) error {
	switch {
	case in.AverageCost == nil:
		return domain.NewValidationError("average_cost", "es requerido")
	case in.SaleValue == nil:
		return domain.NewValidationError("sale_value", "es requerido")
	case in.StockQuantity == nil:
		return domain.NewValidationError("stock_quantity", "es requerido")
	}
	return nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		ProductName:   it.ProductName,
		UnitOfMeasure: string(it.UnitOfMeasure),
		AverageCost:   it.AverageCost,
		SaleValue:     it.SaleValue,
		StockQuantity: it.StockQuantity,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
