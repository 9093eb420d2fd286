package entity

import "time"

// Product representa un producto o SKU del catálogo (multi-bodega).
// El stock por bodega vive en InventoryBalance y solo cambia vía movimientos.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Unit         string // unidad de medida: unidad, kg, m, etc.
	ReorderPoint int64
	SafetyStock  int64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
