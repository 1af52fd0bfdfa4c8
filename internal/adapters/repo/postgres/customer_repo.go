package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/phenrril/tallerfix/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) FindByNameAndPhone(ctx context.Context, name, phone string) ([]domain.Customer, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return nil, errors.New("nombre o teléfono vacío")
	}
	var list []domain.Customer
	if err := r.db.WithContext(ctx).
		Where("name = ? AND phone = ?", name, phone).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomerRepo) FindByNameLike(ctx context.Context, name string) ([]domain.Customer, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, errors.New("nombre vacío")
	}
	var list []domain.Customer
	if err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+n+"%").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomerRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []domain.Customer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CustomerRepo) Save(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

var _ domain.CustomerRepo = (*CustomerRepo)(nil)
