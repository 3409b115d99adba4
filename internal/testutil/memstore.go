// Package testutil provee dobles de prueba compartidos por los tests de aplicación y HTTP.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// MemStore almacén en memoria con semántica transaccional: Run trabaja sobre una copia del
// estado y solo la publica si fn no devuelve error (equivalente a Commit/Rollback).
type MemStore struct {
	mu    sync.Mutex
	state *memState

	// Errores inyectables para simular fallos de persistencia dentro de la transacción.
	FailItemCreate     error
	FailItemUpdate     error
	FailMovementCreate error
	FailMovementDelete error
}

type memState struct {
	items     map[string]entity.Item
	movements []entity.StockMovement
}

func (st *memState) clone() *memState {
	c := &memState{
		items:     make(map[string]entity.Item, len(st.items)),
		movements: make([]entity.StockMovement, len(st.movements)),
	}
	for k, v := range st.items {
		c.items[k] = v
	}
	copy(c.movements, st.movements)
	return c
}

// NewMemStore crea un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{state: &memState{items: make(map[string]entity.Item)}}
}

// Run implementa inventory.TxRunner.
func (s *MemStore) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.state.clone()
	if err := fn(&memItemRepo{s: s, tx: tx}, &memMovementRepo{s: s, tx: tx}); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Items repositorio fuera de transacción (lecturas del pool).
func (s *MemStore) Items() repository.ItemRepository { return &memItemRepo{s: s} }

// Movements repositorio fuera de transacción.
func (s *MemStore) Movements() repository.StockMovementRepository { return &memMovementRepo{s: s} }

// MovementsOf devuelve una copia de los movimientos confirmados de un item.
func (s *MemStore) MovementsOf(itemID string) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.state.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

// MovementCount total de movimientos confirmados.
func (s *MemStore) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.movements)
}

// ItemCount total de items confirmados.
func (s *MemStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.items)
}

// view devuelve el estado sobre el que opera el repo: el de la tx, o el confirmado bajo lock.
func view(s *MemStore, tx *memState) (*memState, func()) {
	if tx != nil {
		return tx, func() {}
	}
	s.mu.Lock()
	return s.state, s.mu.Unlock
}

type memItemRepo struct {
	s  *MemStore
	tx *memState
}

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	if r.s.FailItemCreate != nil {
		return r.s.FailItemCreate
	}
	st, done := view(r.s, r.tx)
	defer done()
	st.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	st, done := view(r.s, r.tx)
	defer done()
	it, ok := st.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	st, done := view(r.s, r.tx)
	defer done()
	list := make([]*entity.Item, 0, len(st.items))
	for _, it := range st.items {
		it := it
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *memItemRepo) Update(_ context.Context, item *entity.Item) error {
	if r.s.FailItemUpdate != nil {
		return r.s.FailItemUpdate
	}
	st, done := view(r.s, r.tx)
	defer done()
	st.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id string) error {
	st, done := view(r.s, r.tx)
	defer done()
	delete(st.items, id)
	return nil
}

type memMovementRepo struct {
	s  *MemStore
	tx *memState
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if r.s.FailMovementCreate != nil {
		return r.s.FailMovementCreate
	}
	st, done := view(r.s, r.tx)
	defer done()
	st.movements = append(st.movements, *m)
	return nil
}

func (r *memMovementRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockMovement, error) {
	st, done := view(r.s, r.tx)
	defer done()
	var out []*entity.StockMovement
	for _, m := range st.movements {
		if m.ItemID == itemID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) DeleteByItem(_ context.Context, itemID string) (int64, error) {
	if r.s.FailMovementDelete != nil {
		return 0, r.s.FailMovementDelete
	}
	st, done := view(r.s, r.tx)
	defer done()
	kept := st.movements[:0]
	var n int64
	for _, m := range st.movements {
		if m.ItemID == itemID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	st.movements = kept
	return n, nil
}
