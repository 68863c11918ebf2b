package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryType categoría del evento auditado.
type HistoryType string

const (
	HistoryTypeEntry   HistoryType = "Entry"
	HistoryTypeProduct HistoryType = "Product"
	HistoryTypeExit    HistoryType = "Exit"
)

// Valid indica si el tipo es conocido.
func (t HistoryType) Valid() bool {
	switch t {
	case HistoryTypeEntry, HistoryTypeProduct, HistoryTypeExit:
		return true
	}
	return false
}

// HistoryStatus mutación registrada.
type HistoryStatus string

const (
	HistoryStatusAdded    HistoryStatus = "Added"
	HistoryStatusModified HistoryStatus = "Modified"
	HistoryStatusRemoved  HistoryStatus = "Removed"
)

// HistoryRecord fila del log de auditoría. Solo inserción; nunca se actualiza ni elimina.
// Los campos puntero son opcionales y se persisten como NULL.
type HistoryRecord struct {
	ID           int64
	Type         HistoryType
	Status       HistoryStatus
	SubjectID    string
	Category     string
	SupplierName *string
	ProductName  *string
	Quantity     *decimal.Decimal
	UnitPrice    *decimal.Decimal
	CreatedAt    time.Time
}
