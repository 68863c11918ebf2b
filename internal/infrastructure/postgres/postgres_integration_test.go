//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	domaininv "github.com/renanb12/Projeto-Integrador/internal/domain/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
	"github.com/renanb12/Projeto-Integrador/internal/infrastructure/postgres"
)

// newTestPool levanta un PostgreSQL efímero, aplica las migraciones y devuelve el pool.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor PostgreSQL")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	mg, err := postgres.NewMigrator(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
	require.NoError(t, mg.Close())

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nfeXML(code, name, qty, price string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<NFe><infNFe Id="NFe35240512345678000199550010000000771000000017">
<ide><serie>1</serie><nNF>77</nNF><dhEmi>2024-05-10T14:30:00-03:00</dhEmi><tpNF>1</tpNF></ide>
<emit><CNPJ>12345678000199</CNPJ><xNome>Acme</xNome></emit>
<dest><CNPJ>98765432000110</CNPJ><xNome>Loja 3D</xNome></dest>
<det><prod><cProd>%s</cProd><xProd>%s</xProd><qCom>%s</qCom><vUnCom>%s</vUnCom><vProd>0</vProd></prod></det>
</infNFe></NFe>`, code, name, qty, price))
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestPostgres_ImportacionYSalida(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	txRunner := postgres.NewTxRunner(pool)
	importer := inventory.NewImportInvoiceUseCase(txRunner, domaininv.NewReconciler(), zerolog.Nop())

	res, err := importer.ImportXML(ctx, inventory.ImportInput{Content: nfeXML("SKU1", "Widget", "10", "5.00"), SourcePath: "uploads/a.xml"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CreatedProducts)

	products := postgres.NewProductRepository(pool)
	p, err := products.FindByBarcode(ctx, "SKU1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Stock.Equal(d("10")))
	assert.True(t, p.PurchasePrice.Equal(d("5")))
	assert.True(t, p.SellingPrice.Equal(d("8")))

	// Segunda nota: mismo código suma stock y sobrescribe precios.
	res, err = importer.ImportXML(ctx, inventory.ImportInput{Content: nfeXML("SKU1", "Widget", "2.5", "6.00")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatedProducts)
	p, err = products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d("12.5")), "stock = %s", p.Stock)
	assert.True(t, p.SellingPrice.Equal(d("9.6")))

	entries := postgres.NewEntryRepository(pool)
	summary, err := entries.GetByID(ctx, res.EntryID)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, entity.EntryStatusCompleted, summary.Status)
	assert.Equal(t, "Acme", summary.Supplier.Name)
	assert.Equal(t, 1, summary.TotalProducts)
	assert.True(t, summary.TotalValue.Equal(d("15")))
	require.NotNil(t, summary.EmissionDate)

	lines, err := entries.ListLines(ctx, res.EntryID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "SKU1", lines[0].Code)

	exitUC := inventory.NewExitUseCase(txRunner, postgres.NewExitRepository(pool), zerolog.Nop())
	exit, err := exitUC.RegisterExit(ctx, dto.RegisterExitRequest{ProductID: p.ID, Quantity: d("2.5"), Reason: "venta"})
	require.NoError(t, err)
	assert.True(t, exit.TotalPrice.Equal(d("24")), "total = %s", exit.TotalPrice)

	_, err = exitUC.RegisterExit(ctx, dto.RegisterExitRequest{ProductID: p.ID, Quantity: d("100")})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	history := postgres.NewHistoryRepository(pool)
	exitsOnly, err := history.List(ctx, repository.HistoryFilter{Type: entity.HistoryTypeExit, Limit: 10})
	require.NoError(t, err)
	require.Len(t, exitsOnly, 1)
	assert.Nil(t, exitsOnly[0].SupplierName)

	stats, err := postgres.NewDashboardRepository(pool).Stats(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 2, stats.EntriesThisMonth)
	assert.Equal(t, 1, stats.ExitsThisMonth)
	assert.True(t, stats.TotalRevenue.Equal(d("24")))

	// Producto referenciado por líneas y salidas: no se puede borrar.
	err = products.Delete(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "err = %v", err)
}

func TestPostgres_ImportacionFallidaNoDejaRastro(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	importer := inventory.NewImportInvoiceUseCase(postgres.NewTxRunner(pool), domaininv.NewReconciler(), zerolog.Nop())

	// name VARCHAR(255): la inserción del producto falla dentro de la transacción.
	_, err := importer.ImportXML(ctx, inventory.ImportInput{Content: nfeXML("SKU9", strings.Repeat("x", 300), "1", "1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrImportFailed))
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	for _, table := range []string{"products", "entries", "entry_products", "history"} {
		assert.Zero(t, countRows(t, pool, table), "tabla %s", table)
	}
}

func TestPostgres_CabeceraLargaSeImporta(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	importer := inventory.NewImportInvoiceUseCase(postgres.NewTxRunner(pool), domaininv.NewReconciler(), zerolog.Nop())

	key := strings.Repeat("9", 60)
	raw := string(nfeXML("SKU7", "Bobina", "1", "2"))
	raw = strings.Replace(raw, `Id="NFe35240512345678000199550010000000771000000017"`, `Id="NFe`+key+`"`, 1)
	raw = strings.Replace(raw, "<serie>1</serie>", "<serie>SERIE-ESPECIAL-001</serie>", 1)
	raw = strings.Replace(raw, "<nNF>77</nNF>", "<nNF>"+strings.Repeat("7", 30)+"</nNF>", 1)
	raw = strings.Replace(raw, "<CNPJ>12345678000199</CNPJ>", "<CNPJ>12.345.678/0001-99 (matriz)</CNPJ>", 1)

	res, err := importer.ImportXML(ctx, inventory.ImportInput{Content: []byte(raw)})
	require.NoError(t, err)

	entry, err := postgres.NewEntryRepository(pool).GetByID(ctx, res.EntryID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, key, entry.AccessKey)
	assert.Equal(t, "SERIE-ESPECIAL-001", entry.Series)
	assert.Equal(t, strings.Repeat("7", 30), entry.EntryCode)
	assert.Equal(t, "12.345.678/0001-99 (matriz)", entry.Supplier.TaxID)
}

func TestPostgres_FindByBarcodeDevuelveElMasAntiguo(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"b-newer", "a-older"} {
		require.NoError(t, repo.Create(ctx, &entity.Product{
			ID: id, Name: id, Barcode: "DUP", Unit: entity.UnitPiece,
			CreatedAt: base.Add(time.Duration(1-i) * time.Hour),
		}))
	}
	p, err := repo.FindByBarcode(ctx, "DUP")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "a-older", p.ID)

	missing, err := repo.FindByBarcode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)

	low, err := repo.ListLowStock(ctx, d("50"), 10)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	found, err := repo.List(ctx, repository.ProductFilter{Search: "old"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a-older", found[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrNotFound)
}
