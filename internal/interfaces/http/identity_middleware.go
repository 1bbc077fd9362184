package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
)

// identityResolver es el contrato mínimo que necesita el middleware para cargar el rol vigente.
// Lo implementa *auth.AuthUseCase; el uso de interfaz evita acoplar el middleware al caso de uso.
type identityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (access.Identity, error)
}

// LoadIdentity reemplaza el rol del token por el que tiene el usuario en base de datos.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 UNAUTHENTICATED → el usuario del token ya no existe.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func LoadIdentity(resolver identityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHENTICATED",
				Message: "user_id no encontrado en el token",
			})
		}

		id, err := resolver.ResolveIdentity(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:    "UNAUTHENTICATED",
					Message: "el usuario del token no existe",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "IDENTITY_CHECK_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}

		c.Locals(LocalIdentity, id)
		c.Locals(LocalRole, string(id.Role))
		return c.Next()
	}
}
