package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/tallerfix/internal/domain"
)

const (
	orderDateLayout = "20060102"
	displayDate     = "2006/01/02"
	displayTime     = "15:04"
	displayStamp    = "2006/01/02 15:04:05"
)

type OrderUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
	Tx        domain.TxManager

	// Clock permite fijar el reloj en tests; nil usa time.Now.
	Clock func() time.Time
}

func (uc *OrderUC) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock()
	}
	return time.Now()
}

// NextOrderID calcula el próximo ID diario: fecha de hoy más secuencia
// de 4 dígitos que arranca en 0001 y se reinicia cada día.
//
// No hay exclusión mutua acá: dos altas concurrentes pueden leer la misma
// última orden y calcular el mismo ID. La PK de la tabla rechaza el
// duplicado al insertar; reintentar queda del lado del que llama.
func (uc *OrderUC) NextOrderID(ctx context.Context) (string, error) {
	today := uc.now()
	prefix := today.Format(orderDateLayout)

	latest, err := uc.Orders.FindLatest(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	seq := 1
	if latest != nil && sameDay(today, latest.CreatedAt) {
		n, err := strconv.Atoi(latest.ID[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("ID de orden corrupto %q: %w", latest.ID, err)
		}
		seq = n + 1
	}
	if seq > 9999 {
		return "", domain.ErrSequenceExhausted
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// resolveCustomer devuelve el cliente que matchea nombre+teléfono,
// creándolo si no existe. Más de un match es dato corrupto y falla.
func (uc *OrderUC) resolveCustomer(ctx context.Context, name, phone string, gender domain.Gender) (uint, error) {
	matches, err := uc.Customers.FindByNameAndPhone(ctx, name, phone)
	if err != nil {
		return 0, err
	}
	switch len(matches) {
	case 0:
		now := uc.now()
		c := domain.Customer{
			Name:      name,
			Phone:     phone,
			Gender:    gender.DBCode(),
			Address:   "",
			Email:     "",
			Level:     domain.DefaultCustomerLevel,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.Customers.Save(ctx, &c); err != nil {
			return 0, err
		}
		return c.ID, nil
	case 1:
		return matches[0].ID, nil
	default:
		log.Warn().Str("name", name).Str("phone", phone).Int("matches", len(matches)).
			Msg("cliente duplicado por nombre y teléfono")
		return 0, domain.ErrAmbiguousCustomer
	}
}

type CreateOrderInput struct {
	CustomerName string
	Phone        string
	Gender       domain.Gender
	Device       string
	DeviceColor  string
	Pin          string
	IMEI         string
	Amount       float64
	ErrorDesc    string
	Memo         string
}

type CreateOrderResult struct {
	OrderID string
	Date    string // yyyy/MM/dd
	Time    string // HH:mm
}

func (uc *OrderUC) Create(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	customerID, err := uc.resolveCustomer(ctx, in.CustomerName, in.Phone, in.Gender)
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("%w: %w", domain.ErrCreateOrder, err)
	}

	id, err := uc.NextOrderID(ctx)
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("%w: %w", domain.ErrCreateOrder, err)
	}

	now := uc.now()
	o := domain.Order{
		ID:         id,
		CustomerID: customerID,
		DeviceName: in.Device,
		Color:      in.DeviceColor,
		DevicePin:  in.Pin,
		IMEI:       in.IMEI,
		FixAmount:  in.Amount,
		ErrorDesc:  in.ErrorDesc,
		Memo:       in.Memo,
		Status:     domain.StatusInRepair,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Orders.Save(ctx, &o); err != nil {
		return CreateOrderResult{}, fmt.Errorf("%w: %w", domain.ErrCreateOrder, err)
	}

	return CreateOrderResult{
		OrderID: o.ID,
		Date:    o.CreatedAt.Format(displayDate),
		Time:    o.CreatedAt.Format(displayTime),
	}, nil
}

// OrderSummary es la fila que ve el mostrador: orden más datos del cliente,
// con fechas ya formateadas y códigos traducidos a su representación externa.
type OrderSummary struct {
	OrderID      string
	CustomerName string
	Phone        string
	Gender       string // código externo M/F
	Device       string
	IMEI         string
	Color        string
	DevicePin    string
	FixAmount    float64
	ErrorDesc    string
	Memo         string
	Status       string // etiqueta legible
	Date         string
	Time         string
	UpdateTime   string
}

// Query resuelve el filtro con precedencia ID > nombre > rango. Sin rango
// explícito se consulta el último año.
func (uc *OrderUC) Query(ctx context.Context, f domain.OrderFilter) ([]OrderSummary, error) {
	now := uc.now()
	from := now.AddDate(-1, 0, 0)
	to := now
	if f.From != nil {
		from = *f.From
	}
	if f.To != nil {
		to = *f.To
	}

	var orders []domain.Order
	switch {
	case f.OrderID != "":
		o, err := uc.Orders.FindByID(ctx, f.OrderID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// ID inexistente: resultado vacío, no error
		if o != nil {
			orders = append(orders, *o)
		}
	case f.CustomerName != "":
		customers, err := uc.Customers.FindByNameLike(ctx, f.CustomerName)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0, len(customers))
		for _, c := range customers {
			ids = append(ids, c.ID)
		}
		if len(ids) > 0 {
			orders, err = uc.Orders.FindByCustomerIDsCreatedBetween(ctx, ids, from, to)
			if err != nil {
				return nil, err
			}
		}
	default:
		var err error
		orders, err = uc.Orders.FindCreatedBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
	}

	customerMap, err := uc.customersFor(ctx, orders)
	if err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		c, ok := customerMap[o.CustomerID]
		if !ok {
			return nil, fmt.Errorf("%w: la orden %s referencia el cliente %d que no existe",
				domain.ErrDataIntegrity, o.ID, o.CustomerID)
		}
		gender, err := domain.GenderFromDBCode(c.Gender)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente %d: %w", domain.ErrDataIntegrity, c.ID, err)
		}
		summaries = append(summaries, OrderSummary{
			OrderID:      o.ID,
			CustomerName: c.Name,
			Phone:        c.Phone,
			Gender:       string(gender),
			Device:       o.DeviceName,
			IMEI:         o.IMEI,
			Color:        o.Color,
			DevicePin:    o.DevicePin,
			FixAmount:    o.FixAmount,
			ErrorDesc:    o.ErrorDesc,
			Memo:         o.Memo,
			Status:       o.Status.Label(),
			Date:         o.CreatedAt.Format(displayDate),
			Time:         o.CreatedAt.Format(displayTime),
			UpdateTime:   o.UpdatedAt.Format(displayStamp),
		})
	}
	return summaries, nil
}

func (uc *OrderUC) customersFor(ctx context.Context, orders []domain.Order) (map[uint]domain.Customer, error) {
	seen := make(map[uint]struct{}, len(orders))
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.CustomerID]; ok {
			continue
		}
		seen[o.CustomerID] = struct{}{}
		ids = append(ids, o.CustomerID)
	}
	if len(ids) == 0 {
		return map[uint]domain.Customer{}, nil
	}
	customers, err := uc.Customers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uint]domain.Customer, len(customers))
	for _, c := range customers {
		m[c.ID] = c
	}
	return m, nil
}

type UpdateOrderInput struct {
	OrderID      string
	CustomerName string
	Phone        string
	Amount       float64
	ErrorDesc    string
	Device       string
	DeviceColor  string
	Memo         string
	Status       domain.FixStatus
}

// Update modifica la orden y su cliente en una sola transacción. A diferencia
// del alta, acá nunca se crea un cliente: nombre+teléfono tiene que resolver
// exactamente un registro existente.
func (uc *OrderUC) Update(ctx context.Context, in UpdateOrderInput) error {
	if _, err := domain.ParseFixStatus(string(in.Status)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpdateOrder, err)
	}
	return uc.Tx.RunAtomically(ctx, func(orders domain.OrderRepo, customers domain.CustomerRepo) error {
		o, err := orders.FindByID(ctx, in.OrderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, in.OrderID)
			}
			return err
		}

		matches, err := customers.FindByNameAndPhone(ctx, in.CustomerName, in.Phone)
		if err != nil {
			return err
		}
		if len(matches) != 1 {
			return fmt.Errorf("%w: nombre+teléfono resolvió %d clientes", domain.ErrUpdateOrder, len(matches))
		}

		now := uc.now()
		o.FixAmount = in.Amount
		o.ErrorDesc = in.ErrorDesc
		o.DeviceName = in.Device
		o.Color = in.DeviceColor
		o.Memo = in.Memo
		o.Status = in.Status
		o.UpdatedAt = now
		if err := orders.Save(ctx, o); err != nil {
			return err
		}

		c := matches[0]
		c.Name = in.CustomerName
		c.Phone = in.Phone
		c.UpdatedAt = now
		return customers.Save(ctx, &c)
	})
}
