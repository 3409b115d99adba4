package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// ErrNoMovements el item existe pero no tiene historial. Envuelve domain.ErrNotFound.
var ErrNoMovements = fmt.Errorf("%w: sin historial de movimientos", domain.ErrNotFound)

// MovementUseCase consulta el historial de movimientos (solo lectura).
type MovementUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// ListByItem devuelve el historial del item en orden cronológico.
// Sin registros responde domain.ErrNotFound si el item no existe, o ErrNoMovements si existe.
func (uc *MovementUseCase) ListByItem(ctx context.Context, itemID string) ([]dto.MovementResponse, error) {
	if !isUUID(itemID) {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		item, err := uc.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		return nil, ErrNoMovements
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		Timestamp:      m.CreatedAt,
		MovementType:   string(m.Type),
		ItemID:         m.ItemID,
		Quantity:       m.Quantity,
		ResultingStock: m.ResultingStock,
	}
}
