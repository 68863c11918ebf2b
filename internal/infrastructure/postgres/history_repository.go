package postgres

import (
	"context"
	"fmt"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

const historyColumns = `id, type, status, item_id, category, supplier_name, product_name, quantity, unit_price, created_at`

// HistoryRepo log de auditoría. Solo INSERT y SELECT.
type HistoryRepo struct {
	q Querier
}

func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append inserta el registro y completa ID y CreatedAt.
func (r *HistoryRepo) Append(ctx context.Context, h *entity.HistoryRecord) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO history (type, status, item_id, category, supplier_name, product_name, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))
		RETURNING id, created_at`,
		string(h.Type), string(h.Status), h.SubjectID, h.Category,
		h.SupplierName, h.ProductName, h.Quantity, h.UnitPrice, nullTime(h.CreatedAt),
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return wrap("insert history", err)
	}
	return nil
}

// List más recientes primero, filtrando por tipo si viene informado.
func (r *HistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.HistoryRecord, error) {
	return r.list(ctx, `SELECT `+historyColumns+` FROM history
		WHERE ($1 = '' OR type = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, string(f.Type), limitOrAll(f.Limit), f.Offset)
}

// Recent últimos `limit` eventos de cualquier tipo.
func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]*entity.HistoryRecord, error) {
	return r.list(ctx, `SELECT `+historyColumns+` FROM history ORDER BY created_at DESC, id DESC LIMIT $1`, limitOrAll(limit))
}

func (r *HistoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.HistoryRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list history", err)
	}
	defer rows.Close()
	var list []*entity.HistoryRecord
	for rows.Next() {
		var h entity.HistoryRecord
		var typ, status string
		if err := rows.Scan(&h.ID, &typ, &status, &h.SubjectID, &h.Category,
			&h.SupplierName, &h.ProductName, &h.Quantity, &h.UnitPrice, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		h.Type = entity.HistoryType(typ)
		h.Status = entity.HistoryStatus(status)
		list = append(list, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list history", err)
	}
	return list, nil
}
