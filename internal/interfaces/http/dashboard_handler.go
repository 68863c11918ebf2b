package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
)

// DashboardService widgets del tablero.
type DashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardOverviewDTO, error)
	Stats(ctx context.Context) (*dto.DashboardStatsDTO, error)
	Activities(ctx context.Context) ([]dto.ActivityDTO, error)
	LowStock(ctx context.Context) ([]dto.LowStockDTO, error)
}

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetOverview devuelve los tres widgets en una sola respuesta.
// GET /api/dashboard
//
// Las fechas se calculan en el servidor (mes calendario en curso).
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStats GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetActivities GET /api/dashboard/activities
func (h *DashboardHandler) GetActivities(c *fiber.Ctx) error {
	out, err := h.uc.Activities(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetLowStock GET /api/dashboard/low-stock
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
