package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterExitRequest entrada para registrar una salida de stock.
type RegisterExitRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Reason    string          `json:"reason" validate:"max=255"`
}

// ExitResponse salida registrada.
type ExitResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductUnit string          `json:"product_type,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExitListResponse listado paginado de salidas.
type ExitListResponse struct {
	Items []ExitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
