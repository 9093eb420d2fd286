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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de SalesOrderRepository sobre PostgreSQL
// (usable con pool o tx). Espejo del adaptador de compras.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste la orden y todas sus líneas. El constraint único sobre
// order_no se traduce a ErrDuplicateOrderNumber.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales_orders (id, customer_id, order_no, status, order_date, expected_ship_date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerID, order.OrderNo, order.Status,
		order.OrderDate, order.ExpectedShipDate, nullable(order.Note),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert sales order: %w", err)
	}

	lineQuery := `
		INSERT INTO sales_order_lines (id, sales_order_id, product_id, qty, unit_price, shipped_qty, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range order.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, order.ID, line.ProductID, line.Qty,
			line.UnitPrice, line.ShippedQty, line.Status,
		); err != nil {
			return fmt.Errorf("insert sales order line: %w", err)
		}
	}
	return nil
}

// GetByID carga la orden con sus líneas.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate carga la orden bloqueando su fila, para serializar
// despachos concurrentes de la misma orden.
func (r *SalesOrderRepo) GetByIDForUpdate(id string) (*entity.SalesOrder, error) {
	return r.get(id, true)
}

func (r *SalesOrderRepo) get(id string, forUpdate bool) (*entity.SalesOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, customer_id, order_no, status, order_date, expected_ship_date, note, created_at, updated_at
		FROM sales_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	order, err := scanSalesOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	order.Lines, err = r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *SalesOrderRepo) loadLines(ctx context.Context, orderID string) ([]*entity.SalesOrderLine, error) {
	query := `
		SELECT id, sales_order_id, product_id, qty, unit_price, shipped_qty, status
		FROM sales_order_lines
		WHERE sales_order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load sales order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SalesOrderLine
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.SalesOrderID, &l.ProductID, &l.Qty,
			&l.UnitPrice, &l.ShippedQty, &l.Status); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateStatus actualiza solo el estado de la orden.
func (r *SalesOrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE sales_orders SET status = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLine actualiza la cantidad despachada y el estado de una línea.
func (r *SalesOrderRepo) UpdateLine(line *entity.SalesOrderLine) error {
	query := `UPDATE sales_order_lines SET shipped_qty = $2, status = $3 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, line.ID, line.ShippedQty, line.Status)
	if err != nil {
		return fmt.Errorf("update sales order line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes con filtro opcional por estado, más recientes primero.
func (r *SalesOrderRepo) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, customer_id, order_no, status, order_date, expected_ship_date, note, created_at, updated_at
		FROM sales_orders WHERE 1=1`
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
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var orders []*entity.SalesOrder
	for rows.Next() {
		order, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
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

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	var note *string
	err := row.Scan(&o.ID, &o.CustomerID, &o.OrderNo, &o.Status,
		&o.OrderDate, &o.ExpectedShipDate, &note, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Note = fromNullable(note)
	return &o, nil
}
