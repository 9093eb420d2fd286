package repository

import "github.com/jhoicas/almacen-erp/internal/domain/entity"

// SalesOrderRepository define el puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	GetByIDForUpdate(id string) (*entity.SalesOrder, error)
	UpdateStatus(orderID, status string) error
	UpdateLine(line *entity.SalesOrderLine) error
	List(status string, limit, offset int) ([]*entity.SalesOrder, error)
}
