package inventory

import (
	"context"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: el item y su movimiento se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// MovementObserver recibe los movimientos ya confirmados (métricas).
type MovementObserver interface {
	ObserveMovement(movement *entity.StockMovement)
}

type noopObserver struct{}

func (noopObserver) ObserveMovement(*entity.StockMovement) {}
