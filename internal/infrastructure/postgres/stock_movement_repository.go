package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, item_id, movement_type, quantity, resulting_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ItemID, string(movement.Type),
		movement.Quantity, movement.ResultingStock, movement.CreatedAt,
	)
	if err != nil {
		return wrapPgError("create stock movement", err)
	}
	return nil
}

// ListByItem devuelve el historial del item en orden cronológico.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, movement_type, quantity, resulting_stock, created_at
		FROM stock_movements WHERE item_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m   entity.StockMovement
		typ string
	)
	if err := row.Scan(&m.ID, &m.ItemID, &typ, &m.Quantity, &m.ResultingStock, &m.CreatedAt); err != nil {
		return nil, err
	}
	mt, err := entity.ParseMovementType(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: movimiento %s con tipo %q", ErrCorruptRow, m.ID, typ)
	}
	m.Type = mt
	return &m, nil
}

// DeleteByItem borra todo el historial del item. Devuelve la cantidad de filas eliminadas.
func (r *StockMovementRepo) DeleteByItem(ctx context.Context, itemID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, wrapPgError("delete stock movements", err)
	}
	return tag.RowsAffected(), nil
}
