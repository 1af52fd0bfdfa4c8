package memory

import (
	"context"

	"github.com/phenrril/tallerfix/internal/domain"
)

// TxManager imita la transacción de la base: saca una copia de ambos
// stores antes de correr fn y la repone si fn falla.
type TxManager struct {
	Orders    *OrderRepo
	Customers *CustomerRepo
}

func NewTxManager(orders *OrderRepo, customers *CustomerRepo) *TxManager {
	return &TxManager{Orders: orders, Customers: customers}
}

func (m *TxManager) RunAtomically(ctx context.Context, fn func(domain.OrderRepo, domain.CustomerRepo) error) error {
	ordersBefore := m.Orders.snapshot()
	customersBefore := m.Customers.snapshot()

	if err := fn(m.Orders, m.Customers); err != nil {
		m.Orders.restore(ordersBefore)
		m.Customers.restore(customersBefore)
		return err
	}
	return nil
}

var _ domain.TxManager = (*TxManager)(nil)
