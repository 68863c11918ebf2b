package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Category      string          `json:"category" validate:"max=100"`
	Stock         decimal.Decimal `json:"stock" validate:"gte=0"`
	SellingPrice  decimal.Decimal `json:"price" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	Barcode       string          `json:"barcode" validate:"max=100"`
	Unit          string          `json:"type" validate:"omitempty,oneof=UN KG L"`
}

// UpdateProductRequest reemplazo completo de los campos editables (PUT).
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Category      string          `json:"category" validate:"max=100"`
	Stock         decimal.Decimal `json:"stock" validate:"gte=0"`
	SellingPrice  decimal.Decimal `json:"price" validate:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	Barcode       string          `json:"barcode" validate:"max=100"`
	Unit          string          `json:"type" validate:"required,oneof=UN KG L"`
}

// ProductResponse salida de un producto con su valoración.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Stock         decimal.Decimal `json:"stock"`
	SellingPrice  decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Barcode       string          `json:"barcode,omitempty"`
	Unit          string          `json:"type"`
	StockValue    decimal.Decimal `json:"stock_value"`
	CostValue     decimal.Decimal `json:"cost_value"`
	ProfitValue   decimal.Decimal `json:"profit_value"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductTotals valoración agregada del listado.
type ProductTotals struct {
	StockValue  decimal.Decimal `json:"stock_value"`
	CostValue   decimal.Decimal `json:"cost_value"`
	ProfitValue decimal.Decimal `json:"profit_value"`
}

// ProductListResponse lista de productos con totales.
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Totals ProductTotals     `json:"totals"`
	Page   PageResponse      `json:"page"`
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	PageRequest
	Search string `query:"q" validate:"max=100"`
}
