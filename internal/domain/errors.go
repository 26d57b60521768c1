package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrNegativeQuantity = errors.New("la cantidad no puede ser negativa")
	ErrNegativePrice    = errors.New("el precio no puede ser negativo")
	ErrPersistence      = errors.New("falla de persistencia")
	ErrModelUnavailable = errors.New("modelo de lenguaje no disponible")
)
