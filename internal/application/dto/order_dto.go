package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden nueva (compra o venta).
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/orders/purchase.
type CreatePurchaseOrderRequest struct {
	SupplierID   string             `json:"supplier_id"`
	OrderNo      string             `json:"order_no"`
	OrderDate    time.Time          `json:"order_date"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
	Note         string             `json:"note,omitempty"`
	Lines        []OrderLineRequest `json:"lines"`
}

// CreateSalesOrderRequest body para POST /api/orders/sales.
type CreateSalesOrderRequest struct {
	CustomerID       string             `json:"customer_id"`
	OrderNo          string             `json:"order_no"`
	OrderDate        time.Time          `json:"order_date"`
	ExpectedShipDate *time.Time         `json:"expected_ship_date,omitempty"`
	Note             string             `json:"note,omitempty"`
	Lines            []OrderLineRequest `json:"lines"`
}

// ReceiveLineRequest body para POST /api/orders/purchase/:id/receive.
type ReceiveLineRequest struct {
	LineID      string `json:"line_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// ShipOrderRequest body para POST /api/orders/sales/:id/ship.
type ShipOrderRequest struct {
	WarehouseID string `json:"warehouse_id"`
}

// PurchaseOrderLineResponse línea de orden de compra en la API.
type PurchaseOrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Qty         int64           `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ReceivedQty int64           `json:"received_qty"`
	Status      string          `json:"status"`
}

// PurchaseOrderResponse orden de compra con líneas.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	SupplierID   string                      `json:"supplier_id"`
	OrderNo      string                      `json:"order_no"`
	Status       string                      `json:"status"`
	OrderDate    time.Time                   `json:"order_date"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	Note         string                      `json:"note,omitempty"`
	Lines        []PurchaseOrderLineResponse `json:"lines"`
	CreatedAt    time.Time                   `json:"created_at"`
}

// SalesOrderLineResponse línea de orden de venta en la API.
type SalesOrderLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Qty        int64           `json:"qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	ShippedQty int64           `json:"shipped_qty"`
	Status     string          `json:"status"`
}

// SalesOrderResponse orden de venta con líneas.
type SalesOrderResponse struct {
	ID               string                   `json:"id"`
	CustomerID       string                   `json:"customer_id"`
	OrderNo          string                   `json:"order_no"`
	Status           string                   `json:"status"`
	OrderDate        time.Time                `json:"order_date"`
	ExpectedShipDate *time.Time               `json:"expected_ship_date,omitempty"`
	Note             string                   `json:"note,omitempty"`
	Lines            []SalesOrderLineResponse `json:"lines"`
	CreatedAt        time.Time                `json:"created_at"`
}
