package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/application/usecase"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

func TestNamedEntityCreateYList(t *testing.T) {
	uc := usecase.NewNamedEntityUseCase(newMemEntities())
	ctx := context.Background()

	_, err := uc.Create(ctx, entity.KindClient, dto.CreateNamedEntityRequest{Name: " Zeta "})
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.KindClient, dto.CreateNamedEntityRequest{Name: "Alfa"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.KindExporter, dto.CreateNamedEntityRequest{Name: "Alfa"})
	require.NoError(t, err)

	list, err := uc.List(ctx, entity.KindClient)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)

	_, err = uc.Create(ctx, entity.KindClient, dto.CreateNamedEntityRequest{Name: "Alfa"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestNamedEntityCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewNamedEntityUseCase(newMemEntities())
	_, err := uc.Create(context.Background(), entity.KindImporter, dto.CreateNamedEntityRequest{Name: "  "})

	var missing *domain.MissingRequiredFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Importador", missing.Field)
}

func TestNamedEntityList_TipoInvalido(t *testing.T) {
	uc := usecase.NewNamedEntityUseCase(newMemEntities())
	_, err := uc.List(context.Background(), entity.EntityKind("supplier"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
