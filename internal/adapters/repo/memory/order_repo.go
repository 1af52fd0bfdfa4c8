package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phenrril/tallerfix/internal/domain"
)

type OrderRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{items: make(map[string]domain.Order)}
}

func (r *OrderRepo) FindLatest(ctx context.Context) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Order
	for id := range r.items {
		if latest == nil || id > latest.ID {
			o := r.items[id]
			latest = &o
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *OrderRepo) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []domain.Order
	for _, o := range r.items {
		if between(o.CreatedAt, from, to) {
			list = append(list, o)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *OrderRepo) FindByCustomerIDsCreatedBetween(ctx context.Context, ids []uint, from, to time.Time) ([]domain.Order, error) {
	idSet := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []domain.Order
	for _, o := range r.items {
		if _, ok := idSet[o.CustomerID]; !ok {
			continue
		}
		if between(o.CreatedAt, from, to) {
			list = append(list, o)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[o.ID] = *o
	return nil
}

func (r *OrderRepo) snapshot() map[string]domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[string]domain.Order, len(r.items))
	for k, v := range r.items {
		cp[k] = v
	}
	return cp
}

func (r *OrderRepo) restore(items map[string]domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
}

func between(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func sortNewestFirst(list []domain.Order) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
}

var _ domain.OrderRepo = (*OrderRepo)(nil)
