// Package importer orquesta la importación masiva de pedidos: resolución de entidades
// nombradas por nombre y la inserción fila por fila con reporte agregado.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

var _ Resolver = (*EntityResolver)(nil)

// EntityResolver busca una entidad por nombre exacto y la crea si no existe.
//
// La unicidad del nombre la garantiza la tabla (UNIQUE). Si dos importaciones crean el
// mismo nombre a la vez, la perdedora recibe ErrDuplicate y vuelve a buscar.
type EntityResolver struct {
	repo repository.NamedEntityRepository
}

// NewEntityResolver construye el resolver.
func NewEntityResolver(repo repository.NamedEntityRepository) *EntityResolver {
	return &EntityResolver{repo: repo}
}

// Resolve devuelve el id de la entidad kind con ese nombre, creándola si hace falta.
// Nombre vacío → MissingRequiredFieldError.
func (r *EntityResolver) Resolve(ctx context.Context, kind entity.EntityKind, name string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("tipo de entidad desconocido %q: %w", kind, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return "", &domain.MissingRequiredFieldError{Field: kind.Label()}
	}

	existing, err := r.repo.FindByName(ctx, kind, name)
	if err != nil {
		return "", fmt.Errorf("buscar %s: %w", kind, err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	e := &entity.NamedEntity{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := r.repo.Create(ctx, e); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return "", fmt.Errorf("crear %s: %w", kind, err)
		}
		// otra importación lo creó entre la búsqueda y el insert
		winner, ferr := r.repo.FindByName(ctx, kind, name)
		if ferr != nil {
			return "", fmt.Errorf("buscar %s tras conflicto: %w", kind, ferr)
		}
		if winner == nil {
			return "", fmt.Errorf("%s %q en conflicto pero no encontrado: %w", kind, name, domain.ErrUpstream)
		}
		return winner.ID, nil
	}
	return e.ID, nil
}
