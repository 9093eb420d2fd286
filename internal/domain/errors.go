package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrOverReceipt          = errors.New("cantidad recibida excede lo pendiente de la línea")
	ErrOverShip             = errors.New("cantidad despachada excede lo pendiente de la línea")
	ErrDuplicateOrderNumber = errors.New("número de orden duplicado")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
)
