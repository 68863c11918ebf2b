package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("cantidad mayor que el stock disponible")

	// Importación de NFe.
	ErrNoFileProvided = errors.New("ningún archivo XML enviado")
	ErrImportFailed   = errors.New("falló la importación del XML")
	ErrPersistence    = errors.New("error de persistencia")
)
