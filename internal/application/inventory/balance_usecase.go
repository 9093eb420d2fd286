package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// BalanceUseCase expone las lecturas del saldo materializado y la
// reconstrucción offline desde el libro de movimientos. El fold del libro es
// la autoridad; el saldo es una caché de ese fold.
type BalanceUseCase struct {
	txRunner    TxRunner
	balanceRepo repository.BalanceRepository
}

// NewBalanceUseCase construye el caso de uso de saldos.
func NewBalanceUseCase(txRunner TxRunner, balanceRepo repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{txRunner: txRunner, balanceRepo: balanceRepo}
}

// Get devuelve el saldo de un par (producto, bodega); en cero si aún no hay
// movimientos (materialización perezosa).
func (uc *BalanceUseCase) Get(productID, warehouseID string) (*entity.InventoryBalance, error) {
	return uc.balanceRepo.Get(productID, warehouseID)
}

// ListByWarehouse lista los saldos de una bodega con paginación.
func (uc *BalanceUseCase) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryBalance, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.balanceRepo.ListByWarehouse(warehouseID, limit, offset)
}

// LowStock devuelve los saldos con disponible por debajo o igual al punto de
// reorden del producto. warehouseID vacío consulta todas las bodegas.
func (uc *BalanceUseCase) LowStock(warehouseID string) ([]*repository.LowStockItem, error) {
	return uc.balanceRepo.ListLowStock(warehouseID)
}

// RebuildResult resultado de reconstruir un saldo desde el libro.
type RebuildResult struct {
	ProductID        string `json:"product_id"`
	WarehouseID      string `json:"warehouse_id"`
	PreviousOnHand   int64  `json:"previous_on_hand"`
	RecomputedOnHand int64  `json:"recomputed_on_hand"`
	Diverged         bool   `json:"diverged"`
}

// Rebuild recalcula el on-hand de un par (producto, bodega) plegando todos
// sus movimientos (Σ IN − Σ OUT) y reescribe el saldo con el resultado, todo
// con la fila bloqueada para no pisar escrituras concurrentes. Diverged
// reporta si la caché se había desviado del libro.
func (uc *BalanceUseCase) Rebuild(ctx context.Context, productID, warehouseID string) (*RebuildResult, error) {
	var result *RebuildResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		balance, err := balanceRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		totals, err := movRepo.SumByDirection(productID, warehouseID)
		if err != nil {
			return err
		}
		onHand := totals.OnHand()
		result = &RebuildResult{
			ProductID:        productID,
			WarehouseID:      warehouseID,
			PreviousOnHand:   balance.OnHandQty,
			RecomputedOnHand: onHand,
			Diverged:         balance.OnHandQty != onHand,
		}
		balance.OnHandQty = onHand
		balance.RecomputeAvailable()
		balance.UpdatedAt = time.Now()
		return balanceRepo.Upsert(balance)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
