package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory/inventorytest"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

func seededExitDB() *inventorytest.DB {
	db := inventorytest.New()
	db.Seed(&entity.Product{
		ID: "p1", Name: "PLA Preto", Category: "Filamentos", Unit: entity.UnitKilogram,
		Stock: d("10"), PurchasePrice: d("50"), SellingPrice: d("80"),
	})
	return db
}

func newExitUC(db *inventorytest.DB) *inventory.ExitUseCase {
	return inventory.NewExitUseCase(db, db.Repos().Exits, zerolog.Nop())
}

func TestRegisterExit_RestaStockYRegistraHistorial(t *testing.T) {
	db := seededExitDB()
	uc := newExitUC(db)

	out, err := uc.RegisterExit(context.Background(), dto.RegisterExitRequest{ProductID: "p1", Quantity: d("2.5"), Reason: "Venda"})
	require.NoError(t, err)
	assert.True(t, out.UnitPrice.Equal(d("80")), "precio de venta al momento de la salida")
	assert.True(t, out.TotalPrice.Equal(d("200")))
	assert.Equal(t, "PLA Preto", out.ProductName)
	assert.Equal(t, "KG", out.ProductUnit)

	st := db.Snapshot()
	assert.True(t, st.Products[0].Stock.Equal(d("7.5")))
	require.Len(t, st.Exits, 1)
	assert.Equal(t, out.ID, st.Exits[0].ID)
	require.Len(t, st.History, 1)
	h := st.History[0]
	assert.Equal(t, entity.HistoryTypeExit, h.Type)
	assert.Equal(t, entity.HistoryStatusAdded, h.Status)
	assert.Equal(t, out.ID, h.SubjectID)
	assert.Equal(t, "Filamentos", h.Category)
	assert.Nil(t, h.SupplierName)
	assert.True(t, h.Quantity.Equal(d("2.5")))
}

func TestRegisterExit_TodoElStock(t *testing.T) {
	db := seededExitDB()
	_, err := newExitUC(db).RegisterExit(context.Background(), dto.RegisterExitRequest{ProductID: "p1", Quantity: d("10")})
	require.NoError(t, err)
	assert.True(t, db.Snapshot().Products[0].Stock.IsZero())
}

func TestRegisterExit_Errores(t *testing.T) {
	cases := []struct {
		name string
		in   dto.RegisterExitRequest
		want error
	}{
		{"stock insuficiente", dto.RegisterExitRequest{ProductID: "p1", Quantity: d("10.01")}, domain.ErrInsufficientStock},
		{"producto inexistente", dto.RegisterExitRequest{ProductID: "nope", Quantity: d("1")}, domain.ErrNotFound},
		{"cantidad cero", dto.RegisterExitRequest{ProductID: "p1", Quantity: d("0")}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.RegisterExitRequest{ProductID: "p1", Quantity: d("-1")}, domain.ErrInvalidInput},
		{"sin producto", dto.RegisterExitRequest{Quantity: d("1")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := seededExitDB()
			before := db.Snapshot()
			_, err := newExitUC(db).RegisterExit(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, db.Snapshot())
		})
	}
}

func TestRegisterExit_FalloDeHistorialRevierte(t *testing.T) {
	db := seededExitDB()
	before := db.Snapshot()
	db.FailOn("history.Append", 1)

	_, err := newExitUC(db).RegisterExit(context.Background(), dto.RegisterExitRequest{ProductID: "p1", Quantity: d("1")})
	assert.ErrorIs(t, err, inventorytest.ErrInjected)
	assert.Equal(t, before, db.Snapshot())
}

func TestExitUseCase_List(t *testing.T) {
	db := seededExitDB()
	uc := newExitUC(db)
	ctx := context.Background()
	for _, q := range []string{"1", "2", "3"} {
		_, err := uc.RegisterExit(ctx, dto.RegisterExitRequest{ProductID: "p1", Quantity: d(q)})
		require.NoError(t, err)
	}
	out, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Quantity.Equal(d("3")), "más recientes primero")
	assert.Equal(t, 2, out.Page.Limit)
}
