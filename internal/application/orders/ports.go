package orders

import (
	"context"

	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción con los
// repositorios que necesita una recepción: libro, saldos y orden de compra.
// Movimiento, saldo y estado de la orden se confirman como una sola unidad.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// SalesTxRunner es el equivalente para el despacho de órdenes de venta.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
		orderRepo repository.SalesOrderRepository,
	) error) error
}
