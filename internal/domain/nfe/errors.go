package nfe

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument faltan nodos estructurales (NFe, infNFe, emit, dest, ide, det/prod)
	// o el contenido no es XML bien formado.
	ErrMalformedDocument = errors.New("documento NFe mal formado")
	// ErrFieldExtraction un campo numérico existe pero no es un decimal válido.
	ErrFieldExtraction = errors.New("campo numérico inválido en la NFe")
)

// FieldError detalle de un campo numérico que no se pudo interpretar.
type FieldError struct {
	Item  int    // posición del det (1..n)
	Field string // qCom, vUnCom, vProd
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nfe: det %d: campo %s inválido (%q): %v", e.Item, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("nfe: det %d: campo %s inválido (%q)", e.Item, e.Field, e.Value)
}

// Unwrap permite errors.Is(err, ErrFieldExtraction).
func (e *FieldError) Unwrap() error { return ErrFieldExtraction }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedDocument}, args...)...)
}
