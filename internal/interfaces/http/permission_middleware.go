package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// permissionChecker es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *usecase.CompanyUserUseCase.
type permissionChecker interface {
	Authorize(ctx context.Context, email, permission string) (*entity.CompanyUser, error)
}

// RequirePermission verifica que el usuario de la empresa asociado al email del token
// exista, esté activo y tenga el permiso. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay email en el contexto.
//   - 403 Forbidden → usuario inexistente, inactivo o sin el permiso.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//
// permission vacío solo exige que el usuario exista y esté activo.
func RequirePermission(permission string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := GetEmail(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "email no encontrado en el token",
			})
		}

		u, err := checker.Authorize(c.UserContext(), email, permission)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "FORBIDDEN",
					Message: "sin permiso para esta operación: " + permission,
				})
			}
			requestLogger(c).Error().Err(err).Str("permission", permission).Msg("verificación de permisos falló")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		c.Locals(LocalCompanyUser, u)
		return c.Next()
	}
}

// GetCompanyUser devuelve el usuario cargado por RequirePermission (nil si no pasó por él).
func GetCompanyUser(c *fiber.Ctx) *entity.CompanyUser {
	u, _ := c.Locals(LocalCompanyUser).(*entity.CompanyUser)
	return u
}
