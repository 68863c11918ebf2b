package usecase

import (
	"context"
	"fmt"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

// HistoryUseCase consulta del log de auditoría.
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List historial más reciente primero, opcionalmente filtrado por tipo.
func (uc *HistoryUseCase) List(ctx context.Context, q dto.HistoryQuery) (*dto.HistoryListResponse, error) {
	q.DefaultPage()
	t := entity.HistoryType(q.Type)
	if t != "" && !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de historial %q", domain.ErrInvalidInput, q.Type)
	}
	list, err := uc.repo.List(ctx, repository.HistoryFilter{Type: t, Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return nil, fmt.Errorf("listar historial: %w", err)
	}
	items := make([]dto.HistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, dto.HistoryResponse{
			ID:           h.ID,
			Type:         string(h.Type),
			Status:       string(h.Status),
			ItemID:       h.SubjectID,
			Category:     h.Category,
			SupplierName: h.SupplierName,
			ProductName:  h.ProductName,
			Quantity:     h.Quantity,
			UnitPrice:    h.UnitPrice,
			CreatedAt:    h.CreatedAt,
		})
	}
	return &dto.HistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}
