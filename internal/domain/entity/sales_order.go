package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-erp/internal/domain"
)

// Estados de una orden de venta. El despacho cierra la orden completa en un
// solo paso (APPROVED -> CLOSED); PARTIALLY_SHIPPED queda en la enumeración
// porque la codificación persistida lo admite, pero ninguna operación lo
// produce hoy.
const (
	SOStatusDraft            = "DRAFT"
	SOStatusApproved         = "APPROVED"
	SOStatusPartiallyShipped = "PARTIALLY_SHIPPED"
	SOStatusClosed           = "CLOSED"
)

// Estados de una línea de orden de venta.
const (
	SOLineStatusPending = "PENDING"
	SOLineStatusShipped = "SHIPPED"
)

// ParseSalesOrderStatus valida un estado contra la enumeración cerrada.
func ParseSalesOrderStatus(s string) (string, error) {
	switch s {
	case SOStatusDraft, SOStatusApproved, SOStatusPartiallyShipped, SOStatusClosed:
		return s, nil
	}
	return "", domain.ErrInvalidInput
}

// SalesOrder representa una orden de venta a un cliente. Igual que en compras,
// las líneas son inmutables en composición desde la creación.
type SalesOrder struct {
	ID               string
	CustomerID       string
	OrderNo          string // único
	Status           string
	OrderDate        time.Time
	ExpectedShipDate *time.Time
	Note             string
	Lines            []*SalesOrderLine
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SalesOrderLine es una línea de orden de venta. ShippedQty es monótona y
// nunca supera Qty.
type SalesOrderLine struct {
	ID           string
	SalesOrderID string
	ProductID    string
	Qty          int64
	UnitPrice    decimal.Decimal
	ShippedQty   int64
	Status       string // PENDING, SHIPPED
}

// RemainingQty devuelve la cantidad pendiente por despachar de la línea.
func (l *SalesOrderLine) RemainingQty() int64 {
	return l.Qty - l.ShippedQty
}

// CanApprove indica si la orden admite la transición DRAFT -> APPROVED.
func (o *SalesOrder) CanApprove() bool {
	return o.Status == SOStatusDraft
}

// CanShip indica si la orden admite el despacho (solo desde APPROVED).
func (o *SalesOrder) CanShip() bool {
	return o.Status == SOStatusApproved
}
