package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

var _ repository.CompanyUserRepository = (*CompanyUserRepo)(nil)

const companyUserColumns = `id, email, name, position, role, is_active, permissions, last_login, created_at, updated_at`

// CompanyUserRepo implementación del puerto CompanyUserRepository. Los overrides de
// permisos se guardan como JSONB.
type CompanyUserRepo struct {
	q Querier
}

// NewCompanyUserRepository construye el adaptador de persistencia para usuarios de empresa.
func NewCompanyUserRepository(q Querier) *CompanyUserRepo {
	return &CompanyUserRepo{q: q}
}

// Create persiste un nuevo usuario; domain.ErrDuplicate si el email ya existe.
func (r *CompanyUserRepo) Create(ctx context.Context, u *entity.CompanyUser) error {
	query := `
		INSERT INTO company_users (` + companyUserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, strings.ToLower(u.Email), u.Name, u.Position, u.Role, u.IsActive,
		nonNilPermissions(u.Permissions), u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; nil, nil si no existe.
func (r *CompanyUserRepo) GetByID(ctx context.Context, id string) (*entity.CompanyUser, error) {
	query := `SELECT ` + companyUserColumns + ` FROM company_users WHERE id = $1`
	return r.getOne(ctx, "get company user", query, id)
}

// GetByEmail búsqueda sin distinguir mayúsculas; nil, nil si no existe.
func (r *CompanyUserRepo) GetByEmail(ctx context.Context, email string) (*entity.CompanyUser, error) {
	query := `SELECT ` + companyUserColumns + ` FROM company_users WHERE email = $1`
	return r.getOne(ctx, "get company user by email", query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *CompanyUserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.CompanyUser, error) {
	u, err := scanCompanyUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// List todos los usuarios ordenados por nombre.
func (r *CompanyUserRepo) List(ctx context.Context) ([]*entity.CompanyUser, error) {
	rows, err := r.q.Query(ctx, `SELECT `+companyUserColumns+` FROM company_users ORDER BY name, email`)
	if err != nil {
		return nil, fmt.Errorf("list company users: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyUser
	for rows.Next() {
		u, err := scanCompanyUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update reescribe nombre, cargo, rol, estado y permisos.
func (r *CompanyUserRepo) Update(ctx context.Context, u *entity.CompanyUser) error {
	query := `
		UPDATE company_users SET
			email = $2, name = $3, position = $4, role = $5, is_active = $6,
			permissions = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, strings.ToLower(u.Email), u.Name, u.Position, u.Role, u.IsActive,
		nonNilPermissions(u.Permissions), u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina el usuario; domain.ErrUserNotFound si no existía.
func (r *CompanyUserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM company_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchLastLogin registra el instante del último acceso.
func (r *CompanyUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE company_users SET last_login = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func scanCompanyUser(s pgxScanner) (*entity.CompanyUser, error) {
	var u entity.CompanyUser
	err := s.Scan(
		&u.ID, &u.Email, &u.Name, &u.Position, &u.Role, &u.IsActive,
		&u.Permissions, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.Permissions == nil {
		u.Permissions = map[string]bool{}
	}
	return &u, nil
}

func nonNilPermissions(p map[string]bool) map[string]bool {
	if p == nil {
		return map[string]bool{}
	}
	return p
}
