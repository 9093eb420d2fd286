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

// PurchaseUseCase conduce las órdenes de compra por su máquina de estados:
// DRAFT -> APPROVED -> PARTIALLY_RECEIVED -> CLOSED. Las recepciones emiten
// movimientos IN/PURCHASE a través del motor de movimientos dentro de la
// misma transacción que actualiza la línea y el estado de la orden.
type PurchaseUseCase struct {
	txRunner      PurchaseTxRunner
	orderRepo     repository.PurchaseOrderRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	movements     *inventory.MovementUseCase
}

// NewPurchaseUseCase construye el caso de uso de compras.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	movements *inventory.MovementUseCase,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		movements:     movements,
	}
}

// PurchaseLineInput línea de una orden de compra nueva.
type PurchaseLineInput struct {
	ProductID string
	Qty       int64
	UnitPrice decimal.Decimal
}

// CreatePurchaseOrderInput entrada para crear una orden de compra.
type CreatePurchaseOrderInput struct {
	SupplierID   string
	OrderNo      string
	OrderDate    time.Time
	ExpectedDate *time.Time
	Note         string
	Lines        []PurchaseLineInput
}

// Create crea una orden de compra en DRAFT con sus líneas. Las líneas quedan
// fijas: no se agregan ni eliminan después de la creación.
func (uc *PurchaseUseCase) Create(ctx context.Context, input CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if input.OrderNo == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if !supplier.Active {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   input.SupplierID,
		OrderNo:      input.OrderNo,
		Status:       entity.POStatusDraft,
		OrderDate:    input.OrderDate,
		ExpectedDate: input.ExpectedDate,
		Note:         input.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
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
		order.Lines = append(order.Lines, &entity.PurchaseOrderLine{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       l.ProductID,
			Qty:             l.Qty,
			UnitPrice:       l.UnitPrice,
			Status:          entity.POLineStatusPending,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Approve pasa la orden de DRAFT a APPROVED; cualquier otro estado origen es
// una transición inválida. La verificación y la escritura van en una
// transacción con la fila bloqueada, igual que las recepciones: de dos
// aprobaciones concurrentes solo la primera transiciona.
func (uc *PurchaseUseCase) Approve(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	var approved *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.BalanceRepository,
		orderRepo repository.PurchaseOrderRepository,
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
		order.Status = entity.POStatusApproved
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

// ReceiveLineInput entrada para recibir mercancía contra una línea.
type ReceiveLineInput struct {
	OrderID     string
	LineID      string
	WarehouseID string
	Quantity    int64
	Actor       string
}

// ReceiveLine registra una recepción parcial o total de una línea: emite el
// movimiento IN/PURCHASE, incrementa received_qty y recalcula el estado de la
// línea y de la orden, todo en una transacción. La cantidad no puede exceder
// lo pendiente de la línea (ErrOverReceipt).
func (uc *PurchaseUseCase) ReceiveLine(ctx context.Context, input ReceiveLineInput) (*entity.PurchaseOrder, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
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

	var received *entity.PurchaseOrder
	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanReceive() {
			return domain.ErrInvalidTransition
		}
		var line *entity.PurchaseOrderLine
		for _, l := range order.Lines {
			if l.ID == input.LineID {
				line = l
				break
			}
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if input.Quantity > line.RemainingQty() {
			return domain.ErrOverReceipt
		}

		_, err = uc.movements.RecordMovementInTx(movRepo, balanceRepo, inventory.MovementInput{
			ProductID:     line.ProductID,
			WarehouseID:   input.WarehouseID,
			Direction:     entity.DirectionIN,
			Quantity:      input.Quantity,
			Type:          entity.MovementTypePURCHASE,
			RefDocumentNo: order.OrderNo,
			RefLineID:     line.ID,
			Note:          "Recepción de compra " + order.OrderNo,
			Actor:         input.Actor,
		})
		if err != nil {
			return err
		}

		line.ReceivedQty += input.Quantity
		if line.ReceivedQty == line.Qty {
			line.Status = entity.POLineStatusReceived
		}
		if err := orderRepo.UpdateLine(line); err != nil {
			return err
		}

		order.RecomputeStatus()
		if err := orderRepo.UpdateStatus(order.ID, order.Status); err != nil {
			return err
		}
		received = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// GetByID devuelve la orden con sus líneas.
func (uc *PurchaseUseCase) GetByID(orderID string) (*entity.PurchaseOrder, error) {
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
func (uc *PurchaseUseCase) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if status != "" {
		if _, err := entity.ParsePurchaseOrderStatus(status); err != nil {
			return nil, err
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.orderRepo.List(status, limit, offset)
}
