package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain"
)

// Códigos de error de la API (dto.ErrorResponse.Code).
const (
	CodeInvalidBody  = "INVALID_BODY"
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeInternal     = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// respondError traduce errores de aplicación a HTTP. notFoundMsg es el mensaje para ErrNotFound.
// Todo lo que no es un error de dominio es un fallo de persistencia: 500 y log.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, vErr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, inventory.ErrNoMovements):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "sin historial de movimientos para este item")
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas")
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("error interno")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
}
