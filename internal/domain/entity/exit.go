package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exit salida de stock de un producto.
type Exit struct {
	ID          string
	ProductID   string
	Quantity    decimal.Decimal
	Reason      string
	UnitPrice   decimal.Decimal // precio de venta al momento de la salida
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
	ProductName string // solo lectura (join)
	ProductUnit Unit   // solo lectura (join)
}
