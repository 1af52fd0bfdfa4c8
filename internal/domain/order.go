package domain

import (
	"context"
	"fmt"
	"time"
)

// FixStatus es el código de estado tal como se persiste.
type FixStatus string

const (
	StatusInRepair     FixStatus = "01"
	StatusRepaired     FixStatus = "02"
	StatusDelivered    FixStatus = "03"
	StatusUnrepairable FixStatus = "04"
	StatusCancelled    FixStatus = "05"
)

var fixStatusLabels = map[FixStatus]string{
	StatusInRepair:     "en reparación",
	StatusRepaired:     "reparado",
	StatusDelivered:    "entregado",
	StatusUnrepairable: "sin reparación",
	StatusCancelled:    "cancelado",
}

func ParseFixStatus(code string) (FixStatus, error) {
	s := FixStatus(code)
	if _, ok := fixStatusLabels[s]; !ok {
		return "", fmt.Errorf("estado de orden desconocido %q", code)
	}
	return s, nil
}

// Label devuelve la etiqueta legible; para códigos legados que ya no
// están en la tabla devuelve el código crudo en vez de fallar.
func (s FixStatus) Label() string {
	if l, ok := fixStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Order es un ticket de reparación. El ID tiene la forma YYYYMMDDNNNN:
// fecha de alta más secuencia diaria de 4 dígitos, asignado una sola vez.
type Order struct {
	ID         string    `gorm:"primaryKey;size:12"`
	CustomerID uint      `gorm:"index;not null"`
	DeviceName string    `gorm:"size:140"`
	Color      string    `gorm:"size:60"`
	DevicePin  string    `gorm:"size:60"`
	IMEI       string    `gorm:"size:40"`
	FixAmount  float64   `gorm:"type:decimal(12,2)"`
	ErrorDesc  string    `gorm:"type:text"`
	Memo       string    `gorm:"type:text"`
	Status     FixStatus `gorm:"type:varchar(4);index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderFilter filtra la consulta de órdenes. La precedencia es
// OrderID, después CustomerName, después sólo el rango de fechas.
type OrderFilter struct {
	OrderID      string
	CustomerName string
	From         *time.Time
	To           *time.Time
}

type OrderRepo interface {
	// FindLatest devuelve la orden con el ID más alto, o ErrNotFound.
	FindLatest(ctx context.Context) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]Order, error)
	FindByCustomerIDsCreatedBetween(ctx context.Context, ids []uint, from, to time.Time) ([]Order, error)
	Save(ctx context.Context, o *Order) error
}

// TxManager delimita una unidad de trabajo atómica sobre ambas tablas.
type TxManager interface {
	RunAtomically(ctx context.Context, fn func(orders OrderRepo, customers CustomerRepo) error) error
}
