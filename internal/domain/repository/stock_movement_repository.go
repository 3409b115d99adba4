package repository

import (
	"context"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de movimientos.
// Los registros son inmutables: no hay Update; DeleteByItem solo se usa en el borrado en cascada del item.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockMovement, error)
	DeleteByItem(ctx context.Context, itemID string) (int64, error)
}
