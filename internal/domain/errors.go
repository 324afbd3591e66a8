package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrDuplicateSerial = errors.New("el serial ya fue agregado a la transacción")
	ErrUnitNotFound    = errors.New("la unidad no existe en el borrador")
	ErrEmptyDraft      = errors.New("la transacción no tiene unidades")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("sesión inválida o expirada")
	ErrNoSession       = errors.New("no hay sesión iniciada")
)
