package postgres

import (
	"context"
	"time"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// MonthRange devuelve [inicio, fin) del mes calendario que contiene now, en su zona horaria.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// Stats agrega los indicadores en una sola ida a la base.
// Entregas pendientes = rutas en pending o in_progress.
func (r *DashboardRepo) Stats(ctx context.Context, now time.Time) (*entity.DashboardStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)                                                   AS total_products,
	    (SELECT COALESCE(SUM(total_price), 0) FROM exits
	      WHERE created_at >= $1 AND created_at < $2)                                     AS total_revenue,
	    (SELECT COUNT(*) FROM customers)                                                  AS total_customers,
	    (SELECT COUNT(*) FROM delivery_routes WHERE status IN ('pending', 'in_progress')) AS pending_deliveries,
	    (SELECT COUNT(*) FROM entries WHERE created_at >= $1 AND created_at < $2)         AS entries_month,
	    (SELECT COUNT(*) FROM exits   WHERE created_at >= $1 AND created_at < $2)         AS exits_month`

	start, end := MonthRange(now)
	var s entity.DashboardStats
	if err := r.q.QueryRow(ctx, query, start, end).Scan(
		&s.TotalProducts,
		&s.TotalRevenue,
		&s.TotalCustomers,
		&s.PendingDeliveries,
		&s.EntriesThisMonth,
		&s.ExitsThisMonth,
	); err != nil {
		return nil, wrap("dashboard stats", err)
	}
	return &s, nil
}
