package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/phenrril/tallerfix/internal/domain"
)

// CustomerRepo es la implementación en memoria para tests y desarrollo local.
type CustomerRepo struct {
	mu     sync.RWMutex
	items  map[uint]domain.Customer
	nextID uint
}

func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{items: make(map[uint]domain.Customer), nextID: 1}
}

func (r *CustomerRepo) FindByNameAndPhone(ctx context.Context, name, phone string) ([]domain.Customer, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return nil, errors.New("nombre o teléfono vacío")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []domain.Customer
	for _, c := range r.items {
		if c.Name == name && c.Phone == phone {
			list = append(list, c)
		}
	}
	sortByID(list)
	return list, nil
}

func (r *CustomerRepo) FindByNameLike(ctx context.Context, name string) ([]domain.Customer, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, errors.New("nombre vacío")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []domain.Customer
	for _, c := range r.items {
		if strings.Contains(c.Name, n) {
			list = append(list, c)
		}
	}
	sortByID(list)
	return list, nil
}

func (r *CustomerRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []domain.Customer
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *CustomerRepo) Save(ctx context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.items[c.ID] = *c
	return nil
}

// Count es para asserts en tests; no forma parte de domain.CustomerRepo.
func (r *CustomerRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *CustomerRepo) snapshot() map[uint]domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[uint]domain.Customer, len(r.items))
	for k, v := range r.items {
		cp[k] = v
	}
	return cp
}

func (r *CustomerRepo) restore(items map[uint]domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
}

func sortByID(list []domain.Customer) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

var _ domain.CustomerRepo = (*CustomerRepo)(nil)
