package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/tallerfix/internal/adapters/repo/memory"
	"github.com/phenrril/tallerfix/internal/domain"
	"github.com/phenrril/tallerfix/internal/usecase"
)

var baseDate = time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)

type fixture struct {
	uc        *usecase.OrderUC
	orders    *memory.OrderRepo
	customers *memory.CustomerRepo
	now       time.Time
}

func newFixture() *fixture {
	orders := memory.NewOrderRepo()
	customers := memory.NewCustomerRepo()
	f := &fixture{orders: orders, customers: customers, now: baseDate}
	f.uc = &usecase.OrderUC{
		Orders:    orders,
		Customers: customers,
		Tx:        memory.NewTxManager(orders, customers),
		Clock:     func() time.Time { return f.now },
	}
	return f
}

func createInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		CustomerName: "Alice",
		Phone:        "555-0100",
		Gender:       domain.GenderFemale,
		Device:       "PhoneX",
		DeviceColor:  "negro",
		Pin:          "1234",
		IMEI:         "490154203237518",
		Amount:       120.00,
		ErrorDesc:    "no enciende",
		Memo:         "trae cargador",
	}
}

func TestNextOrderID_FirstOfDay(t *testing.T) {
	f := newFixture()

	id, err := f.uc.NextOrderID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "202401150001", id)
}

func TestNextOrderID_ResetsAcrossDays(t *testing.T) {
	f := newFixture()
	yesterday := baseDate.AddDate(0, 0, -1)
	require.NoError(t, f.orders.Save(context.Background(), &domain.Order{
		ID:        "202401140042",
		CreatedAt: yesterday,
	}))

	id, err := f.uc.NextOrderID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "202401150001", id)
}

func TestNextOrderID_SequenceExhausted(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.orders.Save(context.Background(), &domain.Order{
		ID:        "202401159999",
		CreatedAt: baseDate,
	}))

	_, err := f.uc.NextOrderID(context.Background())
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
}

func TestCreate_FirstOrderOfDay(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)
	assert.Equal(t, "202401150001", res.OrderID)
	assert.Equal(t, "2024/01/15", res.Date)
	assert.Equal(t, "10:30", res.Time)

	// el cliente nuevo se crea con defaults y el código interno de género
	require.Equal(t, 1, f.customers.Count())
	matches, err := f.customers.FindByNameAndPhone(context.Background(), "Alice", "555-0100")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "2", matches[0].Gender)
	assert.Equal(t, domain.DefaultCustomerLevel, matches[0].Level)
	assert.Empty(t, matches[0].Address)
	assert.Empty(t, matches[0].Email)

	o, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInRepair, o.Status)
	assert.Equal(t, matches[0].ID, o.CustomerID)
}

func TestCreate_SameDaySequenceAndCustomerReuse(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	assert.Equal(t, "202401150001", first.OrderID)
	assert.Equal(t, "202401150002", second.OrderID)
	assert.Equal(t, 1, f.customers.Count())
}

func TestCreate_SequentialIdentifiers(t *testing.T) {
	f := newFixture()

	for k := 1; k <= 5; k++ {
		res, err := f.uc.Create(context.Background(), createInput())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("20240115%04d", k), res.OrderID)
	}
}

func TestCreate_AmbiguousCustomer(t *testing.T) {
	f := newFixture()
	for i := 0; i < 2; i++ {
		require.NoError(t, f.customers.Save(context.Background(), &domain.Customer{
			Name: "Alice", Phone: "555-0100", Gender: "2",
		}))
	}

	_, err := f.uc.Create(context.Background(), createInput())
	assert.ErrorIs(t, err, domain.ErrCreateOrder)
	assert.ErrorIs(t, err, domain.ErrAmbiguousCustomer)
}

func TestQuery_ByID(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	rows, err := f.uc.Query(context.Background(), domain.OrderFilter{OrderID: res.OrderID})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, res.OrderID, r.OrderID)
	assert.Equal(t, "Alice", r.CustomerName)
	assert.Equal(t, "555-0100", r.Phone)
	assert.Equal(t, "F", r.Gender)
	assert.Equal(t, "PhoneX", r.Device)
	assert.Equal(t, "en reparación", r.Status)
	assert.Equal(t, "2024/01/15", r.Date)
	assert.Equal(t, "10:30", r.Time)
	assert.Equal(t, "2024/01/15 10:30:00", r.UpdateTime)
}

func TestQuery_ByID_MissingIsEmptyNotError(t *testing.T) {
	f := newFixture()

	rows, err := f.uc.Query(context.Background(), domain.OrderFilter{OrderID: "209901010001"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_ByCustomerNameSubstring(t *testing.T) {
	f := newFixture()
	in := createInput()
	in.CustomerName = "Alicia Pérez"
	_, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)

	other := createInput()
	other.CustomerName = "Bruno"
	other.Phone = "555-0200"
	_, err = f.uc.Create(context.Background(), other)
	require.NoError(t, err)

	rows, err := f.uc.Query(context.Background(), domain.OrderFilter{CustomerName: "lici"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alicia Pérez", rows[0].CustomerName)

	rows, err = f.uc.Query(context.Background(), domain.OrderFilter{CustomerName: "nadie"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_DefaultRangeIsLastYear(t *testing.T) {
	f := newFixture()

	f.now = baseDate.AddDate(-2, 0, 0)
	_, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	f.now = baseDate
	recent, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	rows, err := f.uc.Query(context.Background(), domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, recent.OrderID, rows[0].OrderID)
}

func TestQuery_ExplicitRange(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	from := baseDate.AddDate(0, 0, -1)
	to := baseDate.AddDate(0, 0, 1)
	rows, err := f.uc.Query(context.Background(), domain.OrderFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, res.OrderID, rows[0].OrderID)

	before := baseDate.AddDate(0, 0, -3)
	until := baseDate.AddDate(0, 0, -2)
	rows, err = f.uc.Query(context.Background(), domain.OrderFilter{From: &before, To: &until})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_OrderWithoutCustomerFailsLoudly(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.orders.Save(context.Background(), &domain.Order{
		ID:         "202401150001",
		CustomerID: 99,
		CreatedAt:  baseDate,
		UpdatedAt:  baseDate,
		Status:     domain.StatusInRepair,
	}))

	_, err := f.uc.Query(context.Background(), domain.OrderFilter{OrderID: "202401150001"})
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func updateInput(orderID string) usecase.UpdateOrderInput {
	return usecase.UpdateOrderInput{
		OrderID:      orderID,
		CustomerName: "Alice",
		Phone:        "555-0100",
		Amount:       150.00,
		ErrorDesc:    "pantalla rota",
		Device:       "PhoneX Pro",
		DeviceColor:  "azul",
		Memo:         "urgente",
		Status:       domain.StatusRepaired,
	}
}

func TestUpdate_OrderNotFound(t *testing.T) {
	f := newFixture()

	err := f.uc.Update(context.Background(), updateInput("209901010001"))
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdate_ZeroCustomerMatchesRollsBack(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	in := updateInput(res.OrderID)
	in.CustomerName = "Nadie"
	in.Phone = "000"
	err = f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUpdateOrder)

	// la orden queda como estaba
	o, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 120.00, o.FixAmount)
	assert.Equal(t, "no enciende", o.ErrorDesc)
	assert.Equal(t, domain.StatusInRepair, o.Status)
}

func TestUpdate_AmbiguousCustomerFails(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	// segundo cliente con el mismo nombre y teléfono, insertado por fuera
	require.NoError(t, f.customers.Save(context.Background(), &domain.Customer{
		Name: "Alice", Phone: "555-0100", Gender: "2",
	}))

	err = f.uc.Update(context.Background(), updateInput(res.OrderID))
	assert.ErrorIs(t, err, domain.ErrUpdateOrder)
}

func TestUpdate_MutatesOrderAndCustomer(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	f.now = baseDate.Add(2 * time.Hour)
	err = f.uc.Update(context.Background(), updateInput(res.OrderID))
	require.NoError(t, err)

	o, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 150.00, o.FixAmount)
	assert.Equal(t, "pantalla rota", o.ErrorDesc)
	assert.Equal(t, "PhoneX Pro", o.DeviceName)
	assert.Equal(t, "azul", o.Color)
	assert.Equal(t, "urgente", o.Memo)
	assert.Equal(t, domain.StatusRepaired, o.Status)
	assert.Equal(t, f.now, o.UpdatedAt)
	// la fecha de alta no se toca
	assert.Equal(t, baseDate, o.CreatedAt)

	matches, err := f.customers.FindByNameAndPhone(context.Background(), "Alice", "555-0100")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, f.now, matches[0].UpdatedAt)
}

func TestUpdate_UnknownStatusRejected(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), createInput())
	require.NoError(t, err)

	in := updateInput(res.OrderID)
	in.Status = domain.FixStatus("99")
	err = f.uc.Update(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUpdateOrder)
}
