package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comex-crm/internal/application/dto"
	"github.com/jhoicas/comex-crm/internal/domain"
	"github.com/jhoicas/comex-crm/internal/domain/entity"
	"github.com/jhoicas/comex-crm/internal/domain/repository"
)

// CompanyUserUseCase gestión de usuarios de la empresa, roles y permisos.
type CompanyUserUseCase struct {
	repo repository.CompanyUserRepository
}

// NewCompanyUserUseCase construye el caso de uso.
func NewCompanyUserUseCase(repo repository.CompanyUserRepository) *CompanyUserUseCase {
	return &CompanyUserUseCase{repo: repo}
}

// Create crea un usuario; domain.ErrDuplicate si el email ya existe.
func (uc *CompanyUserUseCase) Create(ctx context.Context, in dto.CreateCompanyUserRequest) (*dto.CompanyUserResponse, error) {
	if !entity.Contains(entity.Roles, in.Role) {
		return nil, &domain.ValidationError{Messages: []string{"rol inválido: " + in.Role}}
	}
	if err := checkPermissionKeys(in.Permissions); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	u := &entity.CompanyUser{
		ID:          uuid.New().String(),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Name:        strings.TrimSpace(in.Name),
		Position:    strings.TrimSpace(in.Position),
		Role:        in.Role,
		IsActive:    active,
		Permissions: copyPermissions(in.Permissions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.NewCompanyUserResponse(u)
	return &out, nil
}

// GetByID obtiene un usuario; nil, nil si no existe.
func (uc *CompanyUserUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyUserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	out := dto.NewCompanyUserResponse(u)
	return &out, nil
}

// List todos los usuarios.
func (uc *CompanyUserUseCase) List(ctx context.Context) ([]dto.CompanyUserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyUserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewCompanyUserResponse(u))
	}
	return out, nil
}

// Update actualiza datos básicos del usuario.
func (uc *CompanyUserUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyUserRequest) (*dto.CompanyUserResponse, error) {
	return uc.mutate(ctx, id, func(u *entity.CompanyUser) error {
		if in.Email != nil {
			u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
		}
		if in.Name != nil {
			u.Name = strings.TrimSpace(*in.Name)
		}
		if in.Position != nil {
			u.Position = strings.TrimSpace(*in.Position)
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		return nil
	})
}

// UpdateRole cambia el rol y descarta los overrides: los permisos vuelven a los del rol.
func (uc *CompanyUserUseCase) UpdateRole(ctx context.Context, id, role string) (*dto.CompanyUserResponse, error) {
	if !entity.Contains(entity.Roles, role) {
		return nil, &domain.ValidationError{Messages: []string{"rol inválido: " + role}}
	}
	return uc.mutate(ctx, id, func(u *entity.CompanyUser) error {
		u.Role = role
		u.Permissions = map[string]bool{}
		return nil
	})
}

// UpdatePermissions combina los overrides recibidos con los existentes.
func (uc *CompanyUserUseCase) UpdatePermissions(ctx context.Context, id string, perms map[string]bool) (*dto.CompanyUserResponse, error) {
	if err := checkPermissionKeys(perms); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(u *entity.CompanyUser) error {
		if u.Permissions == nil {
			u.Permissions = map[string]bool{}
		}
		for k, v := range perms {
			u.Permissions[k] = v
		}
		return nil
	})
}

// ToggleActive invierte el estado activo del usuario.
func (uc *CompanyUserUseCase) ToggleActive(ctx context.Context, id string) (*dto.CompanyUserResponse, error) {
	return uc.mutate(ctx, id, func(u *entity.CompanyUser) error {
		u.IsActive = !u.IsActive
		return nil
	})
}

// Delete elimina un usuario; domain.ErrUserNotFound si no existe.
func (uc *CompanyUserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Me devuelve el usuario de la empresa asociado al email del token y registra el acceso.
func (uc *CompanyUserUseCase) Me(ctx context.Context, email string) (*dto.CompanyUserResponse, error) {
	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.repo.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u.LastLogin = &now
	out := dto.NewCompanyUserResponse(u)
	return &out, nil
}

// EnsureAdmin garantiza que email exista como admin activo. Lo crea si no existe y
// lo reactiva con rol admin si estaba inactivo o con otro rol. Devuelve true si
// hubo cambios. Email vacío no hace nada.
func (uc *CompanyUserUseCase) EnsureAdmin(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	now := time.Now().UTC()
	if u == nil {
		name, _, _ := strings.Cut(email, "@")
		err := uc.repo.Create(ctx, &entity.CompanyUser{
			ID:          uuid.New().String(),
			Email:       email,
			Name:        name,
			Role:        entity.RoleAdmin,
			IsActive:    true,
			Permissions: map[string]bool{},
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return false, fmt.Errorf("bootstrap admin: %w", err)
		}
		return true, nil
	}
	if u.IsActive && u.Role == entity.RoleAdmin && u.Can(entity.PermUsersManage) {
		return false, nil
	}
	u.Role = entity.RoleAdmin
	u.IsActive = true
	u.Permissions = map[string]bool{}
	u.UpdatedAt = now
	if err := uc.repo.Update(ctx, u); err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	return true, nil
}

// Authorize carga el usuario por email y verifica que esté activo y tenga el permiso.
// Devuelve domain.ErrForbidden si no existe, está inactivo o no tiene el permiso.
func (uc *CompanyUserUseCase) Authorize(ctx context.Context, email, permission string) (*entity.CompanyUser, error) {
	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, domain.ErrForbidden
	}
	if permission != "" && !u.Can(permission) {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

func (uc *CompanyUserUseCase) mutate(ctx context.Context, id string, fn func(u *entity.CompanyUser) error) (*dto.CompanyUserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := dto.NewCompanyUserResponse(u)
	return &out, nil
}

func checkPermissionKeys(perms map[string]bool) error {
	var unknown []string
	for k := range perms {
		if !entity.Contains(entity.AllPermissions, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	msgs := make([]string, 0, len(unknown))
	for _, k := range unknown {
		msgs = append(msgs, fmt.Sprintf("permissão desconhecida: %s", k))
	}
	return &domain.ValidationError{Messages: msgs}
}

func copyPermissions(p map[string]bool) map[string]bool {
	out := make(map[string]bool, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
