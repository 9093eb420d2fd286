package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	Code      string // código único
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
