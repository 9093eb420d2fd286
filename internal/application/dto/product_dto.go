package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	ReorderPoint int64  `json:"reorder_point"`
	SafetyStock  int64  `json:"safety_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id. Solo campos mutables:
// el SKU es identidad y no se puede cambiar. Los punteros distinguen "no
// enviado" de "enviado en cero".
type UpdateProductRequest struct {
	Name         *string `json:"name,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	ReorderPoint *int64  `json:"reorder_point,omitempty"`
	SafetyStock  *int64  `json:"safety_stock,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// ProductResponse representación de un producto en la API.
type ProductResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	ReorderPoint int64     `json:"reorder_point"`
	SafetyStock  int64     `json:"safety_stock"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
