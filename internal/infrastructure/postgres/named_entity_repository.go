package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

var _ repository.NamedEntityRepository = (*NamedEntityRepo)(nil)

// tablas por tipo de entidad (lista blanca: el nombre de tabla no puede ir como parámetro).
var entityTables = map[entity.EntityKind]string{
	entity.KindClient:   "clients",
	entity.KindExporter: "exporters",
	entity.KindImporter: "importers",
	entity.KindProducer: "producers",
}

func entityTable(kind entity.EntityKind) (string, error) {
	t, ok := entityTables[kind]
	if !ok {
		return "", fmt.Errorf("tipo de entidad %q: %w", kind, domain.ErrInvalidInput)
	}
	return t, nil
}

// NamedEntityRepo implementación de NamedEntityRepository (usable con pool o tx).
type NamedEntityRepo struct {
	q Querier
}

// NewNamedEntityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNamedEntityRepository(q Querier) *NamedEntityRepo {
	return &NamedEntityRepo{q: q}
}

// FindByName búsqueda exacta por nombre.
func (r *NamedEntityRepo) FindByName(ctx context.Context, kind entity.EntityKind, name string) (*entity.NamedEntity, error) {
	table, err := entityTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, name, created_at FROM ` + table + ` WHERE name = $1`
	return r.scanOne(ctx, kind, query, name)
}

// GetByID obtiene una entidad por ID.
func (r *NamedEntityRepo) GetByID(ctx context.Context, kind entity.EntityKind, id string) (*entity.NamedEntity, error) {
	table, err := entityTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, name, created_at FROM ` + table + ` WHERE id = $1`
	return r.scanOne(ctx, kind, query, id)
}

func (r *NamedEntityRepo) scanOne(ctx context.Context, kind entity.EntityKind, query string, arg any) (*entity.NamedEntity, error) {
	e := entity.NamedEntity{Kind: kind}
	err := r.q.QueryRow(ctx, query, arg).Scan(&e.ID, &e.Name, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return &e, nil
}

// Create persiste una nueva entidad. ErrDuplicate si el nombre ya existe.
func (r *NamedEntityRepo) Create(ctx context.Context, e *entity.NamedEntity) error {
	table, err := entityTable(e.Kind)
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + table + ` (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.Name, e.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", e.Kind, err)
	}
	return nil
}

// List devuelve todas las entidades del tipo ordenadas por nombre.
func (r *NamedEntityRepo) List(ctx context.Context, kind entity.EntityKind) ([]*entity.NamedEntity, error) {
	table, err := entityTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()
	var list []*entity.NamedEntity
	for rows.Next() {
		e := entity.NamedEntity{Kind: kind}
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
