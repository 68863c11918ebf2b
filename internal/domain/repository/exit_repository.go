package repository

import (
	"context"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// ExitRepository persistencia de salidas de stock.
type ExitRepository interface {
	Create(ctx context.Context, exit *entity.Exit) error
	// List incluye nombre y unidad del producto; más recientes primero.
	List(ctx context.Context, limit, offset int) ([]*entity.Exit, error)
}
