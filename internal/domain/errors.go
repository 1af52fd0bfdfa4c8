package domain

import "errors"

var (
	ErrNotFound = errors.New("registro no encontrado")

	// más de un cliente con el mismo nombre y teléfono: dato corrupto aguas arriba
	ErrAmbiguousCustomer = errors.New("cliente duplicado por nombre y teléfono")

	ErrCreateOrder   = errors.New("no se pudo crear la orden")
	ErrOrderNotFound = errors.New("orden no encontrada")
	ErrUpdateOrder   = errors.New("no se pudo actualizar la orden")

	// una orden referencia un cliente que el lote de clientes no trajo
	ErrDataIntegrity = errors.New("inconsistencia de datos")

	ErrSequenceExhausted = errors.New("secuencia diaria de órdenes agotada")
)
