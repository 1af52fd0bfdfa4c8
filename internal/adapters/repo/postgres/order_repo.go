package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/phenrril/tallerfix/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// FindLatest trae la orden con el ID más alto. Como el ID empieza con la
// fecha en formato YYYYMMDD, el orden lexicográfico es el cronológico.
func (r *OrderRepo) FindLatest(ctx context.Context) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Order("id desc").First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	var list []domain.Order
	if err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("id desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) FindByCustomerIDsCreatedBetween(ctx context.Context, ids []uint, from, to time.Time) ([]domain.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []domain.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id IN ? AND created_at BETWEEN ? AND ?", ids, from, to).
		Order("id desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

var _ domain.OrderRepo = (*OrderRepo)(nil)
