package http

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/application/inventory"
)

// InvoiceImporter importa el XML de una NFe.
type InvoiceImporter interface {
	ImportXML(ctx context.Context, in inventory.ImportInput) (*dto.ImportResult, error)
}

// EntryQueries consultas sobre entradas ya importadas.
type EntryQueries interface {
	List(ctx context.Context, page dto.PageRequest) (*dto.EntryListResponse, error)
	Get(ctx context.Context, id string) (*dto.EntryResponse, error)
	Lines(ctx context.Context, id string) ([]dto.EntryLineResponse, error)
	DownloadPDF(ctx context.Context, id string) ([]byte, string, error)
}

// EntryHandler endpoints de entradas de stock.
type EntryHandler struct {
	importer  InvoiceImporter
	queries   EntryQueries
	uploadDir string
}

// NewEntryHandler construye el handler. uploadDir es donde se guarda cada XML recibido.
func NewEntryHandler(importer InvoiceImporter, queries EntryQueries, uploadDir string) *EntryHandler {
	return &EntryHandler{importer: importer, queries: queries, uploadDir: uploadDir}
}

// ImportXML godoc
// @Summary      Importar NFe
// @Description  Recibe el XML en el campo multipart "xml", lo guarda y crea la entrada de stock.
// @Tags         entries
// @Accept       multipart/form-data
// @Produce      json
// @Param        xml  formData  file  true  "XML de la NFe"
// @Success      201  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/entries/import-xml [post]
func (h *EntryHandler) ImportXML(c *fiber.Ctx) error {
	fh, err := c.FormFile("xml")
	if err != nil {
		return badRequest(c, "NO_FILE", "ningún archivo XML enviado")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xml") {
		return badRequest(c, "INVALID_FILE", "solo se aceptan archivos .xml")
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "NO_FILE", "no se pudo leer el archivo")
	}
	content, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return badRequest(c, "NO_FILE", "no se pudo leer el archivo")
	}

	path, err := h.store(fh.Filename, content)
	if err != nil {
		c.Locals(errorCauseKey, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "UPLOAD_FAILED",
			Message: serverErrorMessages["UPLOAD_FAILED"],
		})
	}

	out, err := h.importer.ImportXML(c.UserContext(), inventory.ImportInput{Content: content, SourcePath: path})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// store escribe el XML ya leído en uploadDir como <uuid>-<nombre original>.
func (h *EntryHandler) store(filename string, content []byte) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de uploads: %w", err)
	}
	path := filepath.Join(h.uploadDir, fmt.Sprintf("%s-%s", uuid.NewString(), filepath.Base(filename)))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("guardar upload: %w", err)
	}
	return path, nil
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.EntryListResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.queries.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada
// @Tags         entries
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lines GET /api/entries/:id/products
func (h *EntryHandler) Lines(c *fiber.Ctx) error {
	out, err := h.queries.Lines(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF devuelve el comprobante de la entrada.
// GET /api/entries/:id/pdf
func (h *EntryHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.queries.DownloadPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
