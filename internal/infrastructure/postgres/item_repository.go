package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, product_name, unit_of_measure, average_cost, sale_value, stock_quantity, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ProductName, string(item.UnitOfMeasure),
		item.AverageCost, item.SaleValue, item.StockQuantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return wrapPgError("insert item", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.getOne(ctx, "get item", query, id)
}

// GetForUpdate obtiene el item bloqueando la fila (SELECT ... FOR UPDATE).
// Solo tiene efecto dentro de una transacción: serializa actualizaciones concurrentes del mismo item.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, "get item for update", query, id)
}

func (r *ItemRepo) getOne(ctx context.Context, op, query, id string) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// List devuelve todos los items ordenados por fecha de creación.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables del item.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET product_name = $2, unit_of_measure = $3, average_cost = $4, sale_value = $5,
		    stock_quantity = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.ProductName, string(item.UnitOfMeasure),
		item.AverageCost, item.SaleValue, item.StockQuantity, item.UpdatedAt,
	)
	if err != nil {
		return wrapPgError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update item %s: no rows affected", item.ID)
	}
	return nil
}

// Delete elimina el item. Los movimientos deben borrarse antes (FK sin cascada).
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return wrapPgError("delete item", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		it   entity.Item
		unit string
	)
	if err := row.Scan(
		&it.ID, &it.ProductName, &unit, &it.AverageCost, &it.SaleValue, &it.StockQuantity,
		&it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u, err := entity.ParseUnitOfMeasure(unit)
	if err != nil {
		return nil, fmt.Errorf("%w: item %s con unidad de medida %q", ErrCorruptRow, it.ID, unit)
	}
	it.UnitOfMeasure = u
	return &it, nil
}
