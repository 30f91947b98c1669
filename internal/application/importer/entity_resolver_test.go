package importer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comex-crm/internal/application/importer"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

func TestEntityResolver_Idempotente(t *testing.T) {
	repo := newMemEntities()
	r := importer.NewEntityResolver(repo)
	ctx := context.Background()

	id1, err := r.Resolve(ctx, entity.KindExporter, "Exportadora Sul")
	require.NoError(t, err)
	id2, err := r.Resolve(ctx, entity.KindExporter, "Exportadora Sul")
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, repo.creates, "como máximo una entidad nueva")
}

func TestEntityResolver_SensibleAMayusculas(t *testing.T) {
	repo := newMemEntities()
	r := importer.NewEntityResolver(repo)
	ctx := context.Background()

	a, err := r.Resolve(ctx, entity.KindClient, "ACME")
	require.NoError(t, err)
	b, err := r.Resolve(ctx, entity.KindClient, "Acme")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, repo.count(entity.KindClient))
}

func TestEntityResolver_TiposSeparados(t *testing.T) {
	repo := newMemEntities()
	r := importer.NewEntityResolver(repo)
	ctx := context.Background()

	a, err := r.Resolve(ctx, entity.KindClient, "Mesmo Nome")
	require.NoError(t, err)
	b, err := r.Resolve(ctx, entity.KindImporter, "Mesmo Nome")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEntityResolver_NombreVacio(t *testing.T) {
	r := importer.NewEntityResolver(newMemEntities())

	_, err := r.Resolve(context.Background(), entity.KindClient, "   ")
	require.Error(t, err)

	var me *domain.MissingRequiredFieldError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "Cliente", me.Field)
}

func TestEntityResolver_ConflictoConcurrente_RelecturaDelGanador(t *testing.T) {
	repo := newMemEntities()
	repo.raceWinner = &entity.NamedEntity{ID: "winner-id", Kind: entity.KindImporter, Name: "Import Co"}
	r := importer.NewEntityResolver(repo)

	id, err := r.Resolve(context.Background(), entity.KindImporter, "Import Co")
	require.NoError(t, err)
	assert.Equal(t, "winner-id", id)
	assert.Equal(t, 1, repo.count(entity.KindImporter))
}
