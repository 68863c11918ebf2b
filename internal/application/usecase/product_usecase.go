package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cada escritura deja un registro en el historial
// dentro de la misma transacción.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// Create crea un producto. Unidad por defecto UN.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	unit := entity.Unit(in.Unit)
	if unit == "" {
		unit = entity.UnitPiece
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Stock:         in.Stock,
		SellingPrice:  in.SellingPrice,
		PurchasePrice: in.PurchasePrice,
		Barcode:       strings.TrimSpace(in.Barcode),
		Unit:          unit,
		CreatedAt:     uc.now(),
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		return repos.History.Append(ctx, productHistory(product, entity.HistoryStatusAdded, product.CreatedAt))
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update reemplaza los campos editables (stock incluido) y registra "Modified".
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		product, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		product.Name = strings.TrimSpace(in.Name)
		product.Category = strings.TrimSpace(in.Category)
		product.Stock = in.Stock
		product.SellingPrice = in.SellingPrice
		product.PurchasePrice = in.PurchasePrice
		product.Barcode = strings.TrimSpace(in.Barcode)
		product.Unit = entity.Unit(in.Unit)
		if err := validateProduct(product); err != nil {
			return err
		}
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return repos.History.Append(ctx, productHistory(product, entity.HistoryStatusModified, uc.now()))
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete elimina un producto y registra "Removed" con sus últimos datos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		product, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := repos.Products.Delete(ctx, id); err != nil {
			return err
		}
		return repos.History.Append(ctx, productHistory(product, entity.HistoryStatusRemoved, uc.now()))
	})
}

// List lista productos (más recientes primero) con la valoración de la página.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{Search: q.Search, Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	totals := dto.ProductTotals{StockValue: decimal.Zero, CostValue: decimal.Zero, ProfitValue: decimal.Zero}
	for _, p := range list {
		r := toProductResponse(p)
		totals.StockValue = totals.StockValue.Add(r.StockValue)
		totals.CostValue = totals.CostValue.Add(r.CostValue)
		totals.ProfitValue = totals.ProfitValue.Add(r.ProfitValue)
		items = append(items, *r)
	}
	return &dto.ProductListResponse{
		Items:  items,
		Totals: totals,
		Page:   dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	case !p.Unit.Valid():
		return fmt.Errorf("%w: unidad %q no soportada", domain.ErrInvalidInput, p.Unit)
	case p.Stock.IsNegative(), p.SellingPrice.IsNegative(), p.PurchasePrice.IsNegative():
		return fmt.Errorf("%w: stock y precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func productHistory(p *entity.Product, status entity.HistoryStatus, at time.Time) *entity.HistoryRecord {
	name := p.Name
	qty := p.Stock
	price := p.SellingPrice
	return &entity.HistoryRecord{
		Type:        entity.HistoryTypeProduct,
		Status:      status,
		SubjectID:   p.ID,
		Category:    p.Category,
		ProductName: &name,
		Quantity:    &qty,
		UnitPrice:   &price,
		CreatedAt:   at,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	stockValue := p.StockValue()
	costValue := p.CostValue()
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Stock:         p.Stock,
		SellingPrice:  p.SellingPrice,
		PurchasePrice: p.PurchasePrice,
		Barcode:       p.Barcode,
		Unit:          string(p.Unit),
		StockValue:    stockValue,
		CostValue:     costValue,
		ProfitValue:   stockValue.Sub(costValue),
		CreatedAt:     p.CreatedAt,
	}
}
