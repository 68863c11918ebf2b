package repository

import (
	"context"

	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
)

// HistoryFilter filtros del log de auditoría. Type vacío = todos.
type HistoryFilter struct {
	Type   entity.HistoryType
	Limit  int
	Offset int
}

// HistoryRepository log de auditoría de solo inserción.
// Append se ejecuta con el Querier de la transacción del caller y se revierte con ella.
type HistoryRepository interface {
	Append(ctx context.Context, record *entity.HistoryRecord) error
	// List más recientes primero.
	List(ctx context.Context, filter HistoryFilter) ([]*entity.HistoryRecord, error)
	Recent(ctx context.Context, limit int) ([]*entity.HistoryRecord, error)
}
