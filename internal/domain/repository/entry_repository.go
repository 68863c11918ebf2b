package repository

import (
	"context"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// EntryRepository persistencia de entradas de stock y sus líneas.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	// AddLine inserta la línea y completa line.ID.
	AddLine(ctx context.Context, line *entity.EntryLine) error
	UpdateStatus(ctx context.Context, id string, status entity.EntryStatus) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.EntrySummary, error)
	List(ctx context.Context, limit, offset int) ([]*entity.EntrySummary, error)
	// ListLines líneas de la entrada con código y nombre del producto, en orden de inserción.
	ListLines(ctx context.Context, entryID string) ([]*entity.EntryLine, error)
}
