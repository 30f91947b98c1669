package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/application/usecase"
)

// CompanyUserHandler administración de usuarios de la empresa y perfil propio (/me).
type CompanyUserHandler struct {
	uc *usecase.CompanyUserUseCase
}

// NewCompanyUserHandler construye el handler.
func NewCompanyUserHandler(uc *usecase.CompanyUserUseCase) *CompanyUserHandler {
	return &CompanyUserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario de la empresa del token actual
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyUserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *CompanyUserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetEmail(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios de la empresa
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CompanyUserResponse
// @Router       /api/company-users [get]
func (h *CompanyUserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.CompanyUserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company-users/{id} [get]
func (h *CompanyUserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario de la empresa
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.CompanyUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company-users [post]
func (h *CompanyUserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del usuario
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del usuario"
// @Param        body  body  dto.UpdateCompanyUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id} [put]
func (h *CompanyUserHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	var in dto.UpdateCompanyUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar rol (los permisos vuelven a los del rol)
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateRoleRequest  true  "Rol"
// @Success      200   {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id}/role [patch]
func (h *CompanyUserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	var in dto.UpdateRoleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateRole(c.UserContext(), id, in.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePermissions godoc
// @Summary      Combinar overrides de permisos
// @Tags         company-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del usuario"
// @Param        body  body  dto.UpdatePermissionsRequest  true  "Permisos"
// @Success      200   {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id}/permissions [patch]
func (h *CompanyUserHandler) UpdatePermissions(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	var in dto.UpdatePermissionsRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdatePermissions(c.UserContext(), id, in.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Activar / desactivar usuario
// @Tags         company-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.CompanyUserResponse
// @Router       /api/company-users/{id}/toggle-active [patch]
func (h *CompanyUserHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	out, err := h.uc.ToggleActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         company-users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company-users/{id} [delete]
func (h *CompanyUserHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
