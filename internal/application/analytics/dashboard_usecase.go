// Package analytics contiene los casos de uso de lectura del tablero principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/domain/entity"
	"github.com/renanb12/Projeto-Integrador/internal/domain/repository"
)

const (
	recentActivities = 10 // filas del widget de actividad
	lowStockLimit    = 10
)

// LowStockThreshold productos con stock por debajo de este valor aparecen en el widget.
var LowStockThreshold = decimal.NewFromInt(50)

// DashboardUseCase arma los widgets del tablero. Solo lectura.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	historyRepo   repository.HistoryRepository
	productRepo   repository.ProductRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	dashboardRepo repository.DashboardRepository,
	historyRepo repository.HistoryRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		dashboardRepo: dashboardRepo,
		historyRepo:   historyRepo,
		productRepo:   productRepo,
		now:           time.Now,
	}
}

// Stats indicadores del mes calendario en curso.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	s, err := uc.dashboardRepo.Stats(ctx, uc.now())
	if err != nil {
		return nil, fmt.Errorf("dashboard: estadísticas: %w", err)
	}
	out := toStatsDTO(s)
	return &out, nil
}

// Activities últimos eventos del historial.
func (uc *DashboardUseCase) Activities(ctx context.Context) ([]dto.ActivityDTO, error) {
	list, err := uc.historyRepo.Recent(ctx, recentActivities)
	if err != nil {
		return nil, fmt.Errorf("dashboard: actividades: %w", err)
	}
	out := make([]dto.ActivityDTO, 0, len(list))
	for _, h := range list {
		out = append(out, toActivityDTO(h))
	}
	return out, nil
}

// LowStock productos bajo LowStockThreshold, menor stock primero.
func (uc *DashboardUseCase) LowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	list, err := uc.productRepo.ListLowStock(ctx, LowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", err)
	}
	out := make([]dto.LowStockDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.LowStockDTO{ID: p.ID, Name: p.Name, Stock: p.Stock, Unit: string(p.Unit)})
	}
	return out, nil
}

// Overview los tres widgets con consultas en paralelo.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*dto.DashboardOverviewDTO, error) {
	type statsResult struct {
		stats *dto.DashboardStatsDTO
		err   error
	}
	type activitiesResult struct {
		items []dto.ActivityDTO
		err   error
	}
	type lowStockResult struct {
		items []dto.LowStockDTO
		err   error
	}

	statsCh := make(chan statsResult, 1)
	actCh := make(chan activitiesResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		s, err := uc.Stats(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		a, err := uc.Activities(ctx)
		actCh <- activitiesResult{a, err}
	}()
	go func() {
		l, err := uc.LowStock(ctx)
		lowCh <- lowStockResult{l, err}
	}()

	stats := <-statsCh
	acts := <-actCh
	low := <-lowCh

	if stats.err != nil {
		return nil, stats.err
	}
	if acts.err != nil {
		return nil, acts.err
	}
	if low.err != nil {
		return nil, low.err
	}
	return &dto.DashboardOverviewDTO{
		Stats:      *stats.stats,
		Activities: acts.items,
		LowStock:   low.items,
		DateLabel:  monthLabel(uc.now()),
	}, nil
}

func toStatsDTO(s *entity.DashboardStats) dto.DashboardStatsDTO {
	return dto.DashboardStatsDTO{
		TotalProducts:     s.TotalProducts,
		TotalRevenue:      s.TotalRevenue.Round(2),
		TotalCustomers:    s.TotalCustomers,
		PendingDeliveries: s.PendingDeliveries,
		EntriesThisMonth:  s.EntriesThisMonth,
		ExitsThisMonth:    s.ExitsThisMonth,
	}
}

// toActivityDTO la descripción es el nombre del producto; si no hay, el proveedor.
func toActivityDTO(h *entity.HistoryRecord) dto.ActivityDTO {
	desc := ""
	switch {
	case h.ProductName != nil:
		desc = *h.ProductName
	case h.SupplierName != nil:
		desc = *h.SupplierName
	}
	return dto.ActivityDTO{
		ID:          h.ID,
		Type:        string(h.Type),
		Status:      string(h.Status),
		Description: desc,
		Timestamp:   h.CreatedAt,
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
