package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-erp/internal/application/inventory"
	"github.com/jhoicas/almacen-erp/internal/domain"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// SalesUseCase conduce las órdenes de venta: DRAFT -> APPROVED -> CLOSED.
// El despacho es de orden completa en un solo paso; el despacho parcial por
// línea no existe deliberadamente (asimetría heredada de la regla de negocio,
// ver DESIGN.md).
type SalesUseCase struct {
	txRunner      SalesTxRunner
	orderRepo     repository.SalesOrderRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	movements     *inventory.MovementUseCase
}

// NewSalesUseCase construye el caso de uso de ventas.
func NewSalesUseCase(
	txRunner SalesTxRunner,
	orderRepo repository.SalesOrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	movements *inventory.MovementUseCase,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		movements:     movements,
	}
}

// SalesLineInput línea de una orden de venta nueva.
type SalesLineInput struct {
	ProductID string
	Qty       int64
	UnitPrice decimal.Decimal
}

// CreateSalesOrderInput entrada para crear una orden de venta.
type CreateSalesOrderInput struct {
	CustomerID       string
	OrderNo          string
	OrderDate        time.Time
	ExpectedShipDate *time.Time
	Note             string
	Lines            []SalesLineInput
}

// Create crea una orden de venta en DRAFT con sus líneas fijas.
func (uc *SalesUseCase) Create(ctx context.Context, input CreateSalesOrderInput) (*entity.SalesOrder, error) {
	if input.OrderNo == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if !customer.Active {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:               uuid.New().String(),
		CustomerID:       input.CustomerID,
		OrderNo:          input.OrderNo,
		Status:           entity.SOStatusDraft,
		OrderDate:        input.OrderDate,
		ExpectedShipDate: input.ExpectedShipDate,
		Note:             input.Note,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, l := range input.Lines {
		if l.Qty <= 0 || l.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
		}
		if !product.Active {
			return nil, domain.ErrConflict
		}
		order.Lines = append(order.Lines, &entity.SalesOrderLine{
			ID:           uuid.New().String(),
			SalesOrderID: order.ID,
			ProductID:    l.ProductID,
			Qty:          l.Qty,
			UnitPrice:    l.UnitPrice,
			Status:       entity.SOLineStatusPending,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Approve pasa la orden de DRAFT a APPROVED. Verificación y escritura van en
// una transacción con la fila bloqueada, igual que el despacho.
func (uc *SalesUseCase) Approve(ctx context.Context, orderID string) (*entity.SalesOrder, error) {
	var approved *entity.SalesOrder
	err := uc.txRunner.RunSales(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.BalanceRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanApprove() {
			return domain.ErrInvalidTransition
		}
		order.Status = entity.SOStatusApproved
		if err := orderRepo.UpdateStatus(order.ID, order.Status); err != nil {
			return err
		}
		approved = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// ShipInput entrada para despachar una orden completa desde una bodega.
type ShipInput struct {
	OrderID     string
	WarehouseID string
	Actor       string
}

// Ship despacha todas las líneas pendientes de una orden APPROVED desde la
// bodega indicada y cierra la orden. Todo-o-nada: primero se verifica la
// disponibilidad de cada línea sobre las filas bloqueadas; si alguna no
// alcanza, la transacción se revierte completa y ninguna línea queda
// despachada. La verificación es contra available_qty para respetar stock
// reservado.
func (uc *SalesUseCase) Ship(ctx context.Context, input ShipInput) (*entity.SalesOrder, error) {
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if !warehouse.Active {
		return nil, domain.ErrConflict
	}

	var shipped *entity.SalesOrder
	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanShip() {
			return domain.ErrInvalidTransition
		}

		// Primera pasada: bloquear los saldos y verificar disponibilidad de
		// todas las líneas antes de escribir nada. El requerido se acumula por
		// producto: dos líneas del mismo producto compiten por el mismo saldo.
		required := make(map[string]int64)
		for _, line := range order.Lines {
			remaining := line.RemainingQty()
			if remaining <= 0 {
				continue
			}
			required[line.ProductID] += remaining
			balance, err := balanceRepo.GetForUpdate(line.ProductID, input.WarehouseID)
			if err != nil {
				return err
			}
			if balance.AvailableQty < required[line.ProductID] {
				return fmt.Errorf("línea %s: %w", line.ID, domain.ErrInsufficientStock)
			}
		}

		// Segunda pasada: emitir los movimientos OUT/SALES y cerrar las líneas.
		for _, line := range order.Lines {
			remaining := line.RemainingQty()
			if remaining <= 0 {
				continue
			}
			_, err := uc.movements.RecordMovementInTx(movRepo, balanceRepo, inventory.MovementInput{
				ProductID:     line.ProductID,
				WarehouseID:   input.WarehouseID,
				Direction:     entity.DirectionOUT,
				Quantity:      remaining,
				Type:          entity.MovementTypeSALES,
				RefDocumentNo: order.OrderNo,
				RefLineID:     line.ID,
				Note:          "Despacho de venta " + order.OrderNo,
				Actor:         input.Actor,
			})
			if err != nil {
				return err
			}
			line.ShippedQty = line.Qty
			line.Status = entity.SOLineStatusShipped
			if err := orderRepo.UpdateLine(line); err != nil {
				return err
			}
		}

		order.Status = entity.SOStatusClosed
		if err := orderRepo.UpdateStatus(order.ID, order.Status); err != nil {
			return err
		}
		shipped = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shipped, nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *SalesUseCase) GetByID(orderID string) (*entity.SalesOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes con filtro opcional de estado.
func (uc *SalesUseCase) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	if status != "" {
		if _, err := entity.ParseSalesOrderStatus(status); err != nil {
			return nil, err
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.orderRepo.List(status, limit, offset)
}
