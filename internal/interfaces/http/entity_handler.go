package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/application/usecase"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// EntityHandler listado y alta de clientes, exportadores, importadores y productores.
// Un handler por tipo; las rutas son idénticas salvo el prefijo.
type EntityHandler struct {
	uc   *usecase.NamedEntityUseCase
	kind entity.EntityKind
}

// NewEntityHandler construye el handler para un tipo de entidad.
func NewEntityHandler(uc *usecase.NamedEntityUseCase, kind entity.EntityKind) *EntityHandler {
	return &EntityHandler{uc: uc, kind: kind}
}

// List godoc
// @Summary      Listar entidades (clients | exporters | importers | producers)
// @Tags         entities
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedEntityResponse
// @Router       /api/clients [get]
func (h *EntityHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear entidad con nombre
// @Tags         entities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNamedEntityRequest  true  "Nombre"
// @Success      201   {object}  dto.NamedEntityResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *EntityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNamedEntityRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entidad por ID
// @Tags         entities
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.NamedEntityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *EntityHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, h.kind.Label()+" no encontrado")
	}
	out, err := h.uc.GetByID(c.UserContext(), h.kind, id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, h.kind.Label()+" no encontrado")
	}
	return c.JSON(out)
}
