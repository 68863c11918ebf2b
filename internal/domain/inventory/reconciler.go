package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/nfe"
)

// ProductLookup búsqueda de productos por código de barras. Devuelve (nil, nil) si no existe.
type ProductLookup interface {
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
}

// Reconciliation resultado de conciliar una línea de la NFe contra el catálogo.
// Si IsNew, Product es un borrador aún no persistido (stock y precios en cero).
type Reconciliation struct {
	ProductID string
	IsNew     bool
	Product   *entity.Product
}

// Reconciler decide, por línea, si se crea un producto o se actualiza uno existente.
// No escribe en ningún almacenamiento.
type Reconciler struct {
	newID func() string
}

// NewReconciler construye el conciliador con ids UUID v4.
func NewReconciler() *Reconciler {
	return &Reconciler{newID: func() string { return uuid.NewString() }}
}

// NewReconcilerWithIDs permite inyectar el generador de ids (tests).
func NewReconcilerWithIDs(newID func() string) *Reconciler {
	return &Reconciler{newID: newID}
}

// Reconcile busca un producto con barcode == item.Code (exacto, sensible a mayúsculas).
// Un código vacío no concilia nunca.
func (r *Reconciler) Reconcile(ctx context.Context, lookup ProductLookup, item nfe.LineItem) (Reconciliation, error) {
	if item.Code != "" {
		existing, err := lookup.FindByBarcode(ctx, item.Code)
		if err != nil {
			return Reconciliation{}, fmt.Errorf("buscar producto %q: %w", item.Code, err)
		}
		if existing != nil {
			return Reconciliation{ProductID: existing.ID, Product: existing}, nil
		}
	}

	id := r.newID()
	return Reconciliation{
		ProductID: id,
		IsNew:     true,
		Product: &entity.Product{
			ID:            id,
			Name:          item.Name,
			Category:      entity.CategoryImported,
			Stock:         decimal.Zero,
			SellingPrice:  decimal.Zero,
			PurchasePrice: decimal.Zero,
			Barcode:       item.Code,
			Unit:          entity.UnitPiece,
		},
	}, nil
}
