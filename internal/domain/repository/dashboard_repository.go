package repository

import (
	"context"
	"time"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// DashboardRepository consultas de lectura del tablero. Read-only.
type DashboardRepository interface {
	// Stats agrega los indicadores del mes calendario que contiene `now`.
	Stats(ctx context.Context, now time.Time) (*entity.DashboardStats, error)
}
