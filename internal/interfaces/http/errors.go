package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/renanb12/Projeto-Integrador/internal/application/dto"
	"github.com/renanb12/Projeto-Integrador/internal/domain"
	"github.com/renanb12/Projeto-Integrador/internal/domain/nfe"
)

// errorStatus traduce errores de dominio a (status HTTP, código).
// El orden importa: una importación fallida siempre envuelve ErrImportFailed, y solo el XML inválido
// (o la falta de archivo) la convierte en 400. Conflictos o filas ausentes durante la importación son 500.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoFileProvided):
		return fiber.StatusBadRequest, "NO_FILE"
	case errors.Is(err, nfe.ErrMalformedDocument), errors.Is(err, nfe.ErrFieldExtraction):
		return fiber.StatusBadRequest, "INVALID_DOCUMENT"
	case errors.Is(err, domain.ErrImportFailed):
		return fiber.StatusInternalServerError, "IMPORT_FAILED"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// Mensajes fijos para 5xx: la causa (texto del driver, SQLSTATE) queda solo en los logs.
var serverErrorMessages = map[string]string{
	"IMPORT_FAILED": "falló la importación del XML",
	"UPLOAD_FAILED": "no se pudo guardar el archivo recibido",
	"INTERNAL":      "error interno del servidor",
}

// clientMessage devuelve err.Error() para errores 4xx y un texto fijo para 5xx.
func clientMessage(status int, code string, err error) string {
	if status < fiber.StatusInternalServerError {
		return err.Error()
	}
	if msg, ok := serverErrorMessages[code]; ok {
		return msg
	}
	return serverErrorMessages["INTERNAL"]
}

// errorCauseKey Locals con la causa de un 5xx, para RequestLogger.
const errorCauseKey = "error_cause"

// writeError responde con dto.ErrorResponse según el error.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		c.Locals(errorCauseKey, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: clientMessage(status, code, err)})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
