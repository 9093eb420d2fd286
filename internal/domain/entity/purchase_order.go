package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-erp/internal/domain"
)

// Estados de una orden de compra. DRAFT es inicial y CLOSED terminal.
// Codificación canónica en mayúsculas, validada en la frontera de persistencia.
const (
	POStatusDraft             = "DRAFT"
	POStatusApproved          = "APPROVED"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusClosed            = "CLOSED"
)

// Estados de una línea de orden de compra.
const (
	POLineStatusPending  = "PENDING"
	POLineStatusReceived = "RECEIVED"
)

// ParsePurchaseOrderStatus valida un estado contra la enumeración cerrada.
func ParsePurchaseOrderStatus(s string) (string, error) {
	switch s {
	case POStatusDraft, POStatusApproved, POStatusPartiallyReceived, POStatusClosed:
		return s, nil
	}
	return "", domain.ErrInvalidInput
}

// PurchaseOrder representa una orden de compra a un proveedor. Las líneas se
// fijan al crear la orden; no se agregan ni eliminan después.
type PurchaseOrder struct {
	ID           string
	SupplierID   string
	OrderNo      string // único
	Status       string
	OrderDate    time.Time
	ExpectedDate *time.Time
	Note         string
	Lines        []*PurchaseOrderLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderLine es una línea de orden de compra. ReceivedQty es monótona
// no decreciente y nunca supera Qty.
type PurchaseOrderLine struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Qty             int64
	UnitPrice       decimal.Decimal
	ReceivedQty     int64
	Status          string // PENDING, RECEIVED
}

// RemainingQty devuelve la cantidad pendiente por recibir de la línea.
func (l *PurchaseOrderLine) RemainingQty() int64 {
	return l.Qty - l.ReceivedQty
}

// CanApprove indica si la orden admite la transición DRAFT -> APPROVED.
func (o *PurchaseOrder) CanApprove() bool {
	return o.Status == POStatusDraft
}

// CanReceive indica si la orden admite recepciones de mercancía.
func (o *PurchaseOrder) CanReceive() bool {
	return o.Status == POStatusApproved || o.Status == POStatusPartiallyReceived
}

// RecomputeStatus recalcula el estado de la orden tras una recepción:
// CLOSED cuando todas las líneas están completas, PARTIALLY_RECEIVED si no.
// Solo tiene sentido llamarlo después de al menos una recepción.
func (o *PurchaseOrder) RecomputeStatus() {
	for _, l := range o.Lines {
		if l.ReceivedQty < l.Qty {
			o.Status = POStatusPartiallyReceived
			return
		}
	}
	o.Status = POStatusClosed
}
