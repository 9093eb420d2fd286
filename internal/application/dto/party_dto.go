package dto

import "time"

// CreatePartyRequest body para crear proveedores y clientes (misma forma).
type CreatePartyRequest struct {
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number"`
}

// UpdatePartyRequest body de actualización explícita campo a campo.
type UpdatePartyRequest struct {
	Name      *string `json:"name,omitempty"`
	TaxNumber *string `json:"tax_number,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// PartyResponse representación de proveedor o cliente en la API.
type PartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxNumber string    `json:"tax_number"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
