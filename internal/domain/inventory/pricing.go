package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// SellingMarkup margen fijo sobre el costo (60%). Constante de la política, no se configura por producto.
var SellingMarkup = decimal.RequireFromString("1.6")

// Prices precios derivados de una línea de NFe.
type Prices struct {
	Purchase decimal.Decimal // costo = vUnCom tal cual
	Selling  decimal.Decimal // costo * SellingMarkup
}

// DerivePrices implementa la política de precios: PrecioCompra = vUnCom, PrecioVenta = vUnCom * 1.6.
func DerivePrices(unitPrice decimal.Decimal) Prices {
	return Prices{
		Purchase: unitPrice,
		Selling:  unitPrice.Mul(SellingMarkup),
	}
}

// ApplyEntry incorpora una entrada a un producto existente: suma la cantidad al stock y
// sobrescribe ambos precios sin comparar con los anteriores (gana la última importación).
func ApplyEntry(p *entity.Product, quantity decimal.Decimal, prices Prices) {
	p.Stock = p.Stock.Add(quantity)
	p.PurchasePrice = prices.Purchase
	p.SellingPrice = prices.Selling
}
