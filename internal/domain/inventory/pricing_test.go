package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/inventory"
)

func TestDerivePrices(t *testing.T) {
	cases := []struct {
		cost    string
		selling string
	}{
		{"0", "0"},
		{"5.00", "8"},
		{"89.90", "143.84"},
		{"120.5", "192.8"},
		{"0.0000000001", "0.00000000016"},
		{"1234567.891", "1975308.6256"},
	}
	for _, tc := range cases {
		t.Run(tc.cost, func(t *testing.T) {
			cost := decimal.RequireFromString(tc.cost)
			p := inventory.DerivePrices(cost)
			assert.True(t, p.Purchase.Equal(cost), "purchase = %s", p.Purchase)
			assert.True(t, p.Selling.Equal(decimal.RequireFromString(tc.selling)), "selling = %s", p.Selling)
			assert.True(t, p.Selling.Equal(cost.Mul(inventory.SellingMarkup)))
		})
	}
}

func TestApplyEntry_SumaStockYSobrescribePrecios(t *testing.T) {
	p := &entity.Product{
		ID:            "p1",
		Stock:         decimal.NewFromInt(10),
		PurchasePrice: decimal.RequireFromString("7.00"),
		SellingPrice:  decimal.RequireFromString("20.00"),
	}
	inventory.ApplyEntry(p, decimal.RequireFromString("2.5"), inventory.DerivePrices(decimal.RequireFromString("5")))

	assert.True(t, p.Stock.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(5)), "el costo baja aunque el anterior fuera mayor")
	assert.True(t, p.SellingPrice.Equal(decimal.NewFromInt(8)), "el precio de venta baja aunque el anterior fuera mayor")
}

func TestApplyEntry_CantidadCero(t *testing.T) {
	p := &entity.Product{Stock: decimal.NewFromInt(3)}
	inventory.ApplyEntry(p, decimal.Zero, inventory.DerivePrices(decimal.NewFromInt(1)))
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(3)))
	assert.True(t, p.SellingPrice.Equal(decimal.RequireFromString("1.6")))
}
