package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-erp/internal/domain/entity"
)

func TestPurchaseOrder_Transiciones(t *testing.T) {
	order := &entity.PurchaseOrder{Status: entity.POStatusDraft}

	assert.True(t, order.CanApprove())
	assert.False(t, order.CanReceive(), "una orden DRAFT no admite recepciones")

	order.Status = entity.POStatusApproved
	assert.False(t, order.CanApprove())
	assert.True(t, order.CanReceive())

	order.Status = entity.POStatusPartiallyReceived
	assert.True(t, order.CanReceive())

	order.Status = entity.POStatusClosed
	assert.False(t, order.CanReceive(), "una orden CLOSED es terminal")
}

func TestPurchaseOrder_RecomputeStatus(t *testing.T) {
	order := &entity.PurchaseOrder{
		Status: entity.POStatusApproved,
		Lines: []*entity.PurchaseOrderLine{
			{Qty: 10, ReceivedQty: 10},
			{Qty: 5, ReceivedQty: 2},
		},
	}
	order.RecomputeStatus()
	assert.Equal(t, entity.POStatusPartiallyReceived, order.Status)

	order.Lines[1].ReceivedQty = 5
	order.RecomputeStatus()
	assert.Equal(t, entity.POStatusClosed, order.Status)
}

func TestPurchaseOrderLine_RemainingQty(t *testing.T) {
	line := &entity.PurchaseOrderLine{Qty: 10, ReceivedQty: 4}
	assert.Equal(t, int64(6), line.RemainingQty())
}

func TestSalesOrder_Transiciones(t *testing.T) {
	order := &entity.SalesOrder{Status: entity.SOStatusDraft}

	assert.True(t, order.CanApprove())
	assert.False(t, order.CanShip(), "una orden DRAFT no se puede despachar")

	order.Status = entity.SOStatusApproved
	assert.True(t, order.CanShip())

	order.Status = entity.SOStatusClosed
	assert.False(t, order.CanShip())
}
