package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// NamedEntityUseCase listado y alta manual de clientes, exportadores, importadores y productores.
type NamedEntityUseCase struct {
	repo repository.NamedEntityRepository
}

// NewNamedEntityUseCase construye el caso de uso.
func NewNamedEntityUseCase(repo repository.NamedEntityRepository) *NamedEntityUseCase {
	return &NamedEntityUseCase{repo: repo}
}

// List entidades de un tipo ordenadas por nombre.
func (uc *NamedEntityUseCase) List(ctx context.Context, kind entity.EntityKind) ([]dto.NamedEntityResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedEntityResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewNamedEntityResponse(e))
	}
	return out, nil
}

// Create alta manual; domain.ErrDuplicate si el nombre ya existe para ese tipo.
func (uc *NamedEntityUseCase) Create(ctx context.Context, kind entity.EntityKind, in dto.CreateNamedEntityRequest) (*dto.NamedEntityResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.MissingRequiredFieldError{Field: kind.Label()}
	}
	e := &entity.NamedEntity{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	out := dto.NewNamedEntityResponse(e)
	return &out, nil
}

// GetByID entidad por id; nil, nil si no existe.
func (uc *NamedEntityUseCase) GetByID(ctx context.Context, kind entity.EntityKind, id string) (*dto.NamedEntityResponse, error) {
	e, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil || e == nil {
		return nil, err
	}
	out := dto.NewNamedEntityResponse(e)
	return &out, nil
}
