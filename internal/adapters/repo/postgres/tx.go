package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/phenrril/tallerfix/internal/domain"
)

type TxManager struct{ db *gorm.DB }

func NewTxManager(db *gorm.DB) *TxManager { return &TxManager{db: db} }

// RunAtomically corre fn dentro de una transacción; los repos que recibe
// están atados a esa transacción, así que un error deshace todo.
func (m *TxManager) RunAtomically(ctx context.Context, fn func(domain.OrderRepo, domain.CustomerRepo) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewOrderRepo(tx), NewCustomerRepo(tx))
	})
}

var _ domain.TxManager = (*TxManager)(nil)
