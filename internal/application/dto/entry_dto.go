package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportResult confirmación de una importación de NFe.
type ImportResult struct {
	EntryID         string `json:"entry_id"`
	AccessKey       string `json:"access_key"`
	Lines           int    `json:"lines"`
	CreatedProducts int    `json:"created_products"`
	UpdatedProducts int    `json:"updated_products"`
	Message         string `json:"message"`
}

// PartyResponse emisor o destinatario.
type PartyResponse struct {
	TaxID string `json:"tax_id"`
	Name  string `json:"name"`
}

// EntryResponse cabecera de entrada con agregados.
type EntryResponse struct {
	ID            string          `json:"id"`
	EntryCode     string          `json:"entry_code"`
	Status        string          `json:"status"`
	Origin        string          `json:"origin"`
	Supplier      PartyResponse   `json:"supplier"`
	Recipient     PartyResponse   `json:"recipient"`
	NoteNumber    string          `json:"note_number"`
	Series        string          `json:"series"`
	EntryType     string          `json:"entry_type"`
	AccessKey     string          `json:"access_key"`
	EmissionDate  *time.Time      `json:"emission_date"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalProducts int             `json:"total_products"`
	TotalItems    decimal.Decimal `json:"total_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// EntryListResponse listado paginado de entradas.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// EntryLineResponse línea de una entrada.
type EntryLineResponse struct {
	ID        int64           `json:"id"`
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}
