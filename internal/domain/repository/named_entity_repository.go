package repository

import (
	"context"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// NamedEntityRepository puerto de persistencia para clientes, exportadores, importadores y productores.
// Cada tipo vive en su propia tabla con UNIQUE(name).
type NamedEntityRepository interface {
	// FindByName búsqueda exacta (sensible a mayúsculas). nil, nil si no existe.
	FindByName(ctx context.Context, kind entity.EntityKind, name string) (*entity.NamedEntity, error)
	GetByID(ctx context.Context, kind entity.EntityKind, id string) (*entity.NamedEntity, error)
	// Create inserta la entidad; devuelve domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, e *entity.NamedEntity) error
	List(ctx context.Context, kind entity.EntityKind) ([]*entity.NamedEntity, error)
}
