package dto

import "time"

// RecordMovementRequest body para POST /api/stock/movements.
type RecordMovementRequest struct {
	ProductID     string `json:"product_id"`
	WarehouseID   string `json:"warehouse_id"`
	Direction     string `json:"direction"`
	Quantity      int64  `json:"quantity"`
	Type          string `json:"type"`
	RefDocumentNo string `json:"ref_document_no,omitempty"`
	RefLineID     string `json:"ref_line_id,omitempty"`
	Note          string `json:"note,omitempty"`
}

// TransferRequest body para POST /api/stock/transfer.
type TransferRequest struct {
	ProductID       string `json:"product_id"`
	FromWarehouseID string `json:"from_warehouse_id"`
	ToWarehouseID   string `json:"to_warehouse_id"`
	Quantity        int64  `json:"quantity"`
	Note            string `json:"note,omitempty"`
}

// MovementResponse representación de una entrada del libro.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	WarehouseID   string    `json:"warehouse_id"`
	Direction     string    `json:"direction"`
	Quantity      int64     `json:"quantity"`
	Type          string    `json:"type"`
	RefDocumentNo string    `json:"ref_document_no,omitempty"`
	RefLineID     string    `json:"ref_line_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
}

// BalanceResponse representación del saldo de un par (producto, bodega).
type BalanceResponse struct {
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	OnHandQty    int64     `json:"on_hand_qty"`
	ReservedQty  int64     `json:"reserved_qty"`
	AvailableQty int64     `json:"available_qty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LowStockItemResponse fila del reporte de bajo stock.
type LowStockItemResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	WarehouseID  string `json:"warehouse_id"`
	OnHandQty    int64  `json:"on_hand_qty"`
	AvailableQty int64  `json:"available_qty"`
	ReorderPoint int64  `json:"reorder_point"`
	SafetyStock  int64  `json:"safety_stock"`
}
