package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search string // nombre o código de barras (ILIKE)
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get/Find devuelven (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// FindByBarcode primera coincidencia exacta por barcode (orden created_at, id).
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update reemplaza los campos editables. ErrNotFound si la fila no existe.
	Update(ctx context.Context, product *entity.Product) error
	// AddStock suma quantity al stock y sobrescribe ambos precios.
	AddStock(ctx context.Context, id string, quantity, purchasePrice, sellingPrice decimal.Decimal) error
	// DecreaseStock resta quantity del stock. ErrInsufficientStock si quedaría negativo.
	DecreaseStock(ctx context.Context, id string, quantity decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock productos con stock < threshold, menor stock primero.
	ListLowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
