package repository

import "github.com/jhoicas/almacen-erp/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra. Las líneas se crean junto con la orden y no cambian en composición.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus líneas. Devuelve
	// domain.ErrDuplicateOrderNumber si el número de orden ya existe.
	Create(order *entity.PurchaseOrder) error
	// GetByID carga la orden con sus líneas.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate carga la orden con sus líneas bloqueando la fila de la
	// orden, para serializar recepciones concurrentes sobre la misma orden.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	// UpdateStatus actualiza solo el estado de la orden.
	UpdateStatus(orderID, status string) error
	// UpdateLine actualiza received_qty y status de una línea.
	UpdateLine(line *entity.PurchaseOrderLine) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
