package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
)

// ExitService salidas de stock.
type ExitService interface {
	RegisterExit(ctx context.Context, in dto.RegisterExitRequest) (*dto.ExitResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.ExitListResponse, error)
}

type ExitHandler struct {
	uc ExitService
}

func NewExitHandler(uc ExitService) *ExitHandler {
	return &ExitHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar salida de stock
// @Tags         exits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExitRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.ExitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/exits [post]
func (h *ExitHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterExitRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterExit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/exits
func (h *ExitHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
