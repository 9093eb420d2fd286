package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-erp/internal/domain"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas viven en purchase_order_lines y se cargan
// siempre junto con la orden.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y todas sus líneas. El constraint único sobre
// order_no se traduce a ErrDuplicateOrderNumber.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (id, supplier_id, order_no, status, order_date, expected_date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.OrderNo, order.Status,
		order.OrderDate, order.ExpectedDate, nullable(order.Note),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	lineQuery := `
		INSERT INTO purchase_order_lines (id, purchase_order_id, product_id, qty, unit_price, received_qty, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range order.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, order.ID, line.ProductID, line.Qty,
			line.UnitPrice, line.ReceivedQty, line.Status,
		); err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID carga la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate carga la orden bloqueando su fila. Las recepciones
// concurrentes sobre la misma orden se serializan en este lock.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, order_no, status, order_date, expected_date, note, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	order, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	order.Lines, err = r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, purchase_order_id, product_id, qty, unit_price, received_qty, status
		FROM purchase_order_lines
		WHERE purchase_order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load purchase order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ProductID, &l.Qty,
			&l.UnitPrice, &l.ReceivedQty, &l.Status); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateStatus actualiza solo el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLine actualiza la cantidad recibida y el estado de una línea.
func (r *PurchaseOrderRepo) UpdateLine(line *entity.PurchaseOrderLine) error {
	query := `UPDATE purchase_order_lines SET received_qty = $2, status = $3 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, line.ID, line.ReceivedQty, line.Status)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes con filtro opcional por estado, más recientes primero.
// Las líneas se cargan por orden; para los volúmenes de listado paginado el
// costo N+1 es aceptable.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, order_no, status, order_date, expected_date, note, created_at, updated_at
		FROM purchase_orders WHERE 1=1`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var orders []*entity.PurchaseOrder
	for rows.Next() {
		order, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range orders {
		if order.Lines, err = r.loadLines(ctx, order.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var note *string
	err := row.Scan(&o.ID, &o.SupplierID, &o.OrderNo, &o.Status,
		&o.OrderDate, &o.ExpectedDate, &note, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Note = fromNullable(note)
	return &o, nil
}
