package entity

import (
	"time"

	"github.com/jhoicas/almacen-erp/internal/domain"
)

// Dirección de un movimiento de inventario. Codificación canónica en mayúsculas;
// cualquier otra variante se rechaza en la frontera de entrada.
const (
	DirectionIN  = "IN"  // entrada
	DirectionOUT = "OUT" // salida
)

// Tipos de movimiento de inventario.
const (
	MovementTypePURCHASE   = "PURCHASE"   // recepción de orden de compra
	MovementTypeSALES      = "SALES"      // despacho de orden de venta
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// ParseDirection valida y normaliza una dirección. Solo acepta la codificación
// canónica: valores con otra capitalización son entrada inválida.
func ParseDirection(s string) (string, error) {
	switch s {
	case DirectionIN, DirectionOUT:
		return s, nil
	}
	return "", domain.ErrInvalidInput
}

// ParseMovementType valida un tipo de movimiento contra la enumeración cerrada.
func ParseMovementType(s string) (string, error) {
	switch s {
	case MovementTypePURCHASE, MovementTypeSALES, MovementTypeTRANSFER, MovementTypeADJUSTMENT:
		return s, nil
	}
	return "", domain.ErrInvalidInput
}

// StockMovement es una entrada del libro de inventario: registro inmutable de un
// cambio de cantidad de un producto en una bodega. Nunca se actualiza ni se
// borra; una corrección se hace con un movimiento nuevo que compense.
type StockMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	Direction     string // IN, OUT
	Quantity      int64  // siempre positivo; la dirección indica el signo
	Type          string // PURCHASE, SALES, TRANSFER, ADJUSTMENT
	RefDocumentNo string // número de documento de referencia (orden, traslado)
	RefLineID     string // línea de orden que originó el movimiento
	Note          string
	CreatedAt     time.Time
	CreatedBy     string // identidad del actor
}

// SignedQuantity devuelve la cantidad con signo según la dirección
// (positiva para IN, negativa para OUT). Útil para el fold del libro.
func (m *StockMovement) SignedQuantity() int64 {
	if m.Direction == DirectionOUT {
		return -m.Quantity
	}
	return m.Quantity
}
