package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, stock, price, purchase_price, barcode, type, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	var unit string
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Stock, &p.SellingPrice, &p.PurchasePrice,
		&barcode, &unit, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Barcode = deref(barcode)
	p.Unit = entity.Unit(unit)
	return &p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return p, nil
}

// Create persiste un nuevo producto. Barcode vacío se guarda como NULL.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, name, category, stock, price, purchase_price, barcode, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))`,
		p.ID, p.Name, p.Category, p.Stock, p.SellingPrice, p.PurchasePrice,
		nullIfEmpty(p.Barcode), string(p.Unit), nullTime(p.CreatedAt),
	)
	if err != nil {
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// FindByBarcode primera coincidencia exacta. barcode no es único: se desempata por antigüedad.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return r.getOne(ctx, "find product by barcode",
		`SELECT `+productColumns+` FROM products WHERE barcode = $1 ORDER BY created_at, id LIMIT 1`, barcode)
}

// Update reemplaza los campos editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products
		SET name = $2, category = $3, stock = $4, price = $5, purchase_price = $6, barcode = $7, type = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Category, p.Stock, p.SellingPrice, p.PurchasePrice, nullIfEmpty(p.Barcode), string(p.Unit),
	)
	if err != nil {
		return wrap("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddStock suma la cantidad y sobrescribe precio de compra y de venta.
func (r *ProductRepo) AddStock(ctx context.Context, id string, quantity, purchasePrice, sellingPrice decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET stock = stock + $2, purchase_price = $3, price = $4 WHERE id = $1`,
		id, quantity, purchasePrice, sellingPrice,
	)
	if err != nil {
		return wrap("add product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecreaseStock resta la cantidad solo si alcanza el stock.
func (r *ProductRepo) DecreaseStock(ctx context.Context, id string, quantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`, id, quantity)
	if err != nil {
		return wrap("decrease product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// List lista productos, más recientes primero, con búsqueda opcional por nombre o barcode.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR barcode ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	return r.list(ctx, "list products", query, f.Search, limitOrAll(f.Limit), f.Offset)
}

// ListLowStock productos bajo el umbral, menor stock primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock < $1 ORDER BY stock ASC, name LIMIT $2`
	return r.list(ctx, "list low stock", query, threshold, limitOrAll(limit))
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return list, nil
}

// Delete elimina un producto por ID. ErrConflict si tiene entradas o salidas asociadas.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return wrap("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
