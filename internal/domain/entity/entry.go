package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus ciclo de vida de una entrada: Processing al crearse, Completed antes del commit.
type EntryStatus string

const (
	EntryStatusProcessing EntryStatus = "Processing"
	EntryStatusCompleted  EntryStatus = "Completed"
)

// Valid indica si el estado es conocido.
func (s EntryStatus) Valid() bool {
	return s == EntryStatusProcessing || s == EntryStatusCompleted
}

// EntryOrigin origen de la entrada de stock.
type EntryOrigin string

const EntryOriginImport EntryOrigin = "Import"

// EntryTypePurchase tipo de entrada registrado para NFe de compra.
const EntryTypePurchase = "Purchase"

// Party emisor o destinatario de la NFe.
type Party struct {
	TaxID string // CNPJ (o CPF)
	Name  string
}

// Entry cabecera de una entrada de stock (una por NFe importada).
// El ID se genera antes de persistir para que las líneas lo referencien en la misma transacción.
type Entry struct {
	ID           string
	EntryCode    string
	Status       EntryStatus
	Origin       EntryOrigin
	XMLPath      string
	Supplier     Party
	Recipient    Party
	NoteNumber   string
	Series       string
	EntryType    string
	AccessKey    string
	EmissionDate *time.Time
	CreatedAt    time.Time
}

// EntryLine una línea de la entrada; UnitPrice es el costo al momento de la entrada.
type EntryLine struct {
	ID        int64
	EntryID   string
	ProductID string
	Code      string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// EntrySummary entrada con agregados de sus líneas (listados).
type EntrySummary struct {
	Entry
	TotalProducts int
	TotalItems    decimal.Decimal
	TotalValue    decimal.Decimal
}
