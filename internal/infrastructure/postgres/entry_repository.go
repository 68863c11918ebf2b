package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// Cabecera más agregados de las líneas; LEFT JOIN para que una entrada sin líneas también aparezca.
const entrySummarySelect = `
	SELECT e.id, e.entry_code, e.status, e.origin, e.xml_path,
	       e.supplier_name, e.supplier_cnpj, e.recipient_name, e.recipient_cnpj,
	       e.note_number, e.series, e.entry_type, e.access_key, e.emission_date, e.created_at,
	       COUNT(ep.id), COALESCE(SUM(ep.quantity), 0), COALESCE(SUM(ep.quantity * ep.unit_price), 0)
	FROM entries e
	LEFT JOIN entry_products ep ON ep.entry_id = e.id`

// EntryRepo adaptador de entradas de stock.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el repositorio sobre pool o tx.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create inserta la cabecera con el ID ya generado.
func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO entries (id, entry_code, status, origin, xml_path,
			supplier_name, supplier_cnpj, recipient_name, recipient_cnpj,
			note_number, series, entry_type, access_key, emission_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, COALESCE($15, now()))`,
		e.ID, e.EntryCode, string(e.Status), string(e.Origin), e.XMLPath,
		e.Supplier.Name, e.Supplier.TaxID, e.Recipient.Name, e.Recipient.TaxID,
		e.NoteNumber, e.Series, e.EntryType, e.AccessKey, e.EmissionDate, nullTime(e.CreatedAt),
	)
	if err != nil {
		return wrap("insert entry", err)
	}
	return nil
}

// AddLine inserta la línea y completa line.ID con la identidad generada.
func (r *EntryRepo) AddLine(ctx context.Context, l *entity.EntryLine) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO entry_products (entry_id, product_id, code, name, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		l.EntryID, l.ProductID, nullIfEmpty(l.Code), l.Name, l.Quantity, l.UnitPrice, l.LineTotal,
	).Scan(&l.ID)
	if err != nil {
		return wrap("insert entry line", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la entrada.
func (r *EntryRepo) UpdateStatus(ctx context.Context, id string, status entity.EntryStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE entries SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return wrap("update entry status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEntrySummary(row pgx.Row) (*entity.EntrySummary, error) {
	var s entity.EntrySummary
	var status, origin string
	if err := row.Scan(&s.ID, &s.EntryCode, &status, &origin, &s.XMLPath,
		&s.Supplier.Name, &s.Supplier.TaxID, &s.Recipient.Name, &s.Recipient.TaxID,
		&s.NoteNumber, &s.Series, &s.EntryType, &s.AccessKey, &s.EmissionDate, &s.CreatedAt,
		&s.TotalProducts, &s.TotalItems, &s.TotalValue); err != nil {
		return nil, err
	}
	s.Status = entity.EntryStatus(status)
	s.Origin = entity.EntryOrigin(origin)
	return &s, nil
}

// GetByID entrada con sus agregados. (nil, nil) si no existe.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.EntrySummary, error) {
	s, err := scanEntrySummary(r.q.QueryRow(ctx, entrySummarySelect+` WHERE e.id = $1 GROUP BY e.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get entry", err)
	}
	return s, nil
}

// List entradas más recientes primero.
func (r *EntryRepo) List(ctx context.Context, limit, offset int) ([]*entity.EntrySummary, error) {
	rows, err := r.q.Query(ctx, entrySummarySelect+`
		GROUP BY e.id
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $1 OFFSET $2`, limitOrAll(limit), offset)
	if err != nil {
		return nil, wrap("list entries", err)
	}
	defer rows.Close()
	var list []*entity.EntrySummary
	for rows.Next() {
		s, err := scanEntrySummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list entries", err)
	}
	return list, nil
}

// ListLines líneas en orden de inserción.
func (r *EntryRepo) ListLines(ctx context.Context, entryID string) ([]*entity.EntryLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, entry_id, product_id, code, name, quantity, unit_price, total
		FROM entry_products WHERE entry_id = $1 ORDER BY id`, entryID)
	if err != nil {
		return nil, wrap("list entry lines", err)
	}
	defer rows.Close()
	var list []*entity.EntryLine
	for rows.Next() {
		var l entity.EntryLine
		var code *string
		if err := rows.Scan(&l.ID, &l.EntryID, &l.ProductID, &code, &l.Name, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan entry line: %w", err)
		}
		l.Code = deref(code)
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list entry lines", err)
	}
	return list, nil
}
