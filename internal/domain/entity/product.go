package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit unidad de medida del producto.
type Unit string

const (
	UnitPiece    Unit = "UN"
	UnitKilogram Unit = "KG"
	UnitLiter    Unit = "L"
)

// Valid indica si la unidad pertenece al catálogo cerrado.
func (u Unit) Valid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitLiter:
		return true
	}
	return false
}

// CategoryImported categoría asignada a los productos creados por importación de NFe.
const CategoryImported = "Imported"

// Product representa un producto del catálogo.
// Barcode es la clave natural con la que se concilian las líneas de la NFe; vacío = sin código
// (se persiste como NULL y nunca concilia).
type Product struct {
	ID            string
	Name          string
	Category      string
	Stock         decimal.Decimal // cantidad disponible, nunca negativa
	SellingPrice  decimal.Decimal
	PurchasePrice decimal.Decimal // costo
	Barcode       string
	Unit          Unit
	CreatedAt     time.Time
}

// StockValue valor del stock a precio de venta.
func (p *Product) StockValue() decimal.Decimal {
	return p.Stock.Mul(p.SellingPrice)
}

// CostValue valor del stock a costo.
func (p *Product) CostValue() decimal.Decimal {
	return p.Stock.Mul(p.PurchasePrice)
}
