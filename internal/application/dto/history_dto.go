package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryQuery filtros de GET /api/history.
type HistoryQuery struct {
	PageRequest
	Type string `query:"type" validate:"omitempty,oneof=Entry Product Exit"`
}

// HistoryResponse fila del log de auditoría; los opcionales se emiten como null.
type HistoryResponse struct {
	ID           int64            `json:"id"`
	Type         string           `json:"type"`
	Status       string           `json:"status"`
	ItemID       string           `json:"item_id"`
	Category     string           `json:"category"`
	SupplierName *string          `json:"supplier_name"`
	ProductName  *string          `json:"product_name"`
	Quantity     *decimal.Decimal `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	CreatedAt    time.Time        `json:"created_at"`
}

// HistoryListResponse listado paginado del historial.
type HistoryListResponse struct {
	Items []HistoryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
