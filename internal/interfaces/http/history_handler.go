package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
)

// HistoryService lectura del log de auditoría.
type HistoryService interface {
	List(ctx context.Context, q dto.HistoryQuery) (*dto.HistoryListResponse, error)
}

type HistoryHandler struct {
	uc HistoryService
}

func NewHistoryHandler(uc HistoryService) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         history
// @Produce      json
// @Param        type    query  string  false  "Entry, Product o Exit"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.HistoryListResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
