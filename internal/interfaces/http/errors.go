package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/rs/zerolog/log"
)

// respondError traduce errores de dominio a {code, message} con su status HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	if reason, ok := access.ReasonOf(err); ok {
		switch reason {
		case access.ReasonUnauthenticated:
			return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "autenticación requerida"}
		case access.ReasonNoRole:
			return fiber.StatusForbidden, dto.ErrorResponse{Code: "NO_ROLE", Message: "tu cuenta no tiene un rol asignado"}
		default:
			return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permiso para esta operación"}
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrChecklistIncomplete):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CHECKLIST_INCOMPLETE", Message: "marca los cuatro hitos antes de completar la incorporación"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"}
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_SUBMITTED", Message: "el cuestionario ya fue enviado"}
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_STATE", Message: "operación no permitida en el estado actual"}
	case errors.Is(err, domain.ErrSelfDelete):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "SELF_DELETE", Message: "no puedes eliminar tu propia cuenta"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "autenticación requerida"}
	case errors.Is(err, domain.ErrNoRole):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "NO_ROLE", Message: "tu cuenta no tiene un rol asignado"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permiso para esta operación"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
