package postgres

import (
	"context"
	"fmt"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

var _ repository.ExitRepository = (*ExitRepo)(nil)

// ExitRepo salidas de stock. total_price es columna generada.
type ExitRepo struct {
	q Querier
}

func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

// Create inserta la salida y recupera total_price y created_at calculados por la base.
func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO exits (id, product_id, quantity, reason, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING total_price, created_at`,
		e.ID, e.ProductID, e.Quantity, e.Reason, e.UnitPrice, nullTime(e.CreatedAt),
	).Scan(&e.TotalPrice, &e.CreatedAt)
	if err != nil {
		return wrap("insert exit", err)
	}
	return nil
}

// List salidas con nombre y unidad del producto.
func (r *ExitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Exit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT x.id, x.product_id, x.quantity, x.reason, x.unit_price, x.total_price, x.created_at, p.name, p.type
		FROM exits x
		JOIN products p ON p.id = x.product_id
		ORDER BY x.created_at DESC, x.id
		LIMIT $1 OFFSET $2`, limitOrAll(limit), offset)
	if err != nil {
		return nil, wrap("list exits", err)
	}
	defer rows.Close()
	var list []*entity.Exit
	for rows.Next() {
		var e entity.Exit
		var unit string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.Reason, &e.UnitPrice, &e.TotalPrice,
			&e.CreatedAt, &e.ProductName, &unit); err != nil {
			return nil, fmt.Errorf("scan exit: %w", err)
		}
		e.ProductUnit = entity.Unit(unit)
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list exits", err)
	}
	return list, nil
}
