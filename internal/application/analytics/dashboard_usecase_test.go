package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory/inventorytest"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

type statsRepoStub struct {
	stats *entity.DashboardStats
	err   error
	got   time.Time
}

func (s *statsRepoStub) Stats(_ context.Context, now time.Time) (*entity.DashboardStats, error) {
	s.got = now
	return s.stats, s.err
}

func strPtr(s string) *string { return &s }

func newTestDashboard(t *testing.T, stats *statsRepoStub) *DashboardUseCase {
	t.Helper()
	db := inventorytest.New()
	db.Seed(
		&entity.Product{ID: "a", Name: "Alto", Stock: decimal.NewFromInt(80), Unit: entity.UnitPiece},
		&entity.Product{ID: "b", Name: "Bajo", Stock: decimal.NewFromInt(3), Unit: entity.UnitKilogram},
		&entity.Product{ID: "c", Name: "Medio", Stock: decimal.RequireFromString("49.99"), Unit: entity.UnitLiter},
	)
	err := db.Run(context.Background(), func(r inventory.TxRepos) error {
		for i := 0; i < 12; i++ {
			if err := r.History.Append(context.Background(), &entity.HistoryRecord{
				Type: entity.HistoryTypeProduct, Status: entity.HistoryStatusAdded,
				SubjectID: "a", ProductName: strPtr("Alto"),
			}); err != nil {
				return err
			}
		}
		return r.History.Append(context.Background(), &entity.HistoryRecord{
			Type: entity.HistoryTypeEntry, Status: entity.HistoryStatusAdded,
			SubjectID: "e1", SupplierName: strPtr("Acme"),
		})
	})
	require.NoError(t, err)

	repos := db.Repos()
	uc := NewDashboardUseCase(stats, repos.History, repos.Products)
	uc.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestDashboard_Stats(t *testing.T) {
	stub := &statsRepoStub{stats: &entity.DashboardStats{
		TotalProducts: 3, TotalRevenue: decimal.RequireFromString("1234.567"),
		TotalCustomers: 4, PendingDeliveries: 2, EntriesThisMonth: 5, ExitsThisMonth: 6,
	}}
	uc := newTestDashboard(t, stub)

	s, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalProducts)
	assert.True(t, s.TotalRevenue.Equal(decimal.RequireFromString("1234.57")))
	assert.Equal(t, 2, s.PendingDeliveries)
	assert.Equal(t, time.May, stub.got.Month())
}

func TestDashboard_ActivitiesUltimasDiez(t *testing.T) {
	uc := newTestDashboard(t, &statsRepoStub{stats: &entity.DashboardStats{}})

	acts, err := uc.Activities(context.Background())
	require.NoError(t, err)
	require.Len(t, acts, 10)
	assert.Equal(t, "Entry", acts[0].Type, "más reciente primero")
	assert.Equal(t, "Acme", acts[0].Description, "sin producto se usa el proveedor")
	assert.Equal(t, "Alto", acts[1].Description)
}

func TestDashboard_LowStock(t *testing.T) {
	uc := newTestDashboard(t, &statsRepoStub{stats: &entity.DashboardStats{}})

	low, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Bajo", low[0].Name)
	assert.Equal(t, "KG", low[0].Unit)
	assert.Equal(t, "Medio", low[1].Name)
}

func TestDashboard_Overview(t *testing.T) {
	uc := newTestDashboard(t, &statsRepoStub{stats: &entity.DashboardStats{TotalProducts: 3}})

	o, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, o.Stats.TotalProducts)
	assert.Len(t, o.Activities, 10)
	assert.Len(t, o.LowStock, 2)
	assert.Equal(t, "Mayo 2024", o.DateLabel)
}

func TestDashboard_OverviewPropagaError(t *testing.T) {
	boom := errors.New("db caída")
	uc := newTestDashboard(t, &statsRepoStub{err: boom})

	_, err := uc.Overview(context.Background())
	assert.ErrorIs(t, err, boom)
}
