package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable
// con pool o tx). La fila por par (producto, bodega) se materializa de forma
// perezosa con el primer Upsert; el constraint único de la tabla garantiza
// una sola fila por par.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo actual; en cero si la fila no existe todavía.
func (r *BalanceRepo) Get(productID, warehouseID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, warehouse_id, on_hand_qty, reserved_qty, available_qty, updated_at
		FROM inventory_balances WHERE product_id = $1 AND warehouse_id = $2`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&b.ProductID, &b.WarehouseID, &b.OnHandQty, &b.ReservedQty, &b.AvailableQty, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo bloqueando la fila (SELECT FOR UPDATE) para
// serializar mutaciones concurrentes del mismo par. Si la fila no existe aún
// no hay nada que bloquear: el constraint único en el Upsert posterior cubre
// la carrera de primera creación.
func (r *BalanceRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, warehouse_id, on_hand_qty, reserved_qty, available_qty, updated_at
		FROM inventory_balances WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&b.ProductID, &b.WarehouseID, &b.OnHandQty, &b.ReservedQty, &b.AvailableQty, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo del par (producto, bodega).
func (r *BalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	query := `
		INSERT INTO inventory_balances (product_id, warehouse_id, on_hand_qty, reserved_qty, available_qty, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET on_hand_qty = EXCLUDED.on_hand_qty,
			reserved_qty = EXCLUDED.reserved_qty,
			available_qty = EXCLUDED.available_qty,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.WarehouseID,
		balance.OnHandQty, balance.ReservedQty, balance.AvailableQty,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListByWarehouse lista los saldos de una bodega.
func (r *BalanceRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, warehouse_id, on_hand_qty, reserved_qty, available_qty, updated_at
		FROM inventory_balances
		WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBalance
	for rows.Next() {
		var b entity.InventoryBalance
		if err := rows.Scan(&b.ProductID, &b.WarehouseID, &b.OnHandQty, &b.ReservedQty, &b.AvailableQty, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListLowStock devuelve los saldos con disponible <= punto de reorden del
// producto. warehouseID vacío consulta todas las bodegas.
func (r *BalanceRepo) ListLowStock(warehouseID string) ([]*repository.LowStockItem, error) {
	query := `
		SELECT b.product_id, p.sku, p.name, b.warehouse_id,
			b.on_hand_qty, b.available_qty, p.reorder_point, p.safety_stock
		FROM inventory_balances b
		JOIN products p ON p.id = b.product_id
		WHERE p.active AND b.available_qty <= p.reorder_point`
	args := []any{}
	if warehouseID != "" {
		query += " AND b.warehouse_id = $1"
		args = append(args, warehouseID)
	}
	query += " ORDER BY b.available_qty - p.reorder_point, p.sku"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		if err := rows.Scan(&item.ProductID, &item.SKU, &item.ProductName, &item.WarehouseID,
			&item.OnHandQty, &item.AvailableQty, &item.ReorderPoint, &item.SafetyStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
