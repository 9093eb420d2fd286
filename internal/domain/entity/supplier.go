package entity

import "time"

// Supplier representa un proveedor referenciado por órdenes de compra.
type Supplier struct {
	ID        string
	Name      string
	TaxNumber string // NIT u otro identificador fiscal, único
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
