package entity

import "time"

// Customer representa un cliente referenciado por órdenes de venta.
type Customer struct {
	ID        string
	Name      string
	TaxNumber string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
