package entity

import "time"

// Roles válidos para CompanyUser.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleEditor  = "editor"
	RoleViewer  = "viewer"
)

// Roles lista ordenada de roles válidos.
var Roles = []string{RoleAdmin, RoleManager, RoleEditor, RoleViewer}

// Claves de permiso.
const (
	PermOrdersView    = "orders.view"
	PermOrdersCreate  = "orders.create"
	PermOrdersEdit    = "orders.edit"
	PermOrdersDelete  = "orders.delete"
	PermOrdersImport  = "orders.import"
	PermFinancialView = "financial.view"
	PermStatsView     = "stats.view"
	PermUsersManage   = "users.manage"
)

// AllPermissions todas las claves de permiso conocidas.
var AllPermissions = []string{
	PermOrdersView, PermOrdersCreate, PermOrdersEdit, PermOrdersDelete, PermOrdersImport,
	PermFinancialView, PermStatsView, PermUsersManage,
}

// CompanyUser usuario de la empresa con rol y permisos (la autenticación la hace el backend externo).
type CompanyUser struct {
	ID          string
	Email       string
	Name        string
	Position    string
	Role        string
	IsActive    bool
	Permissions map[string]bool // overrides sobre los permisos por defecto del rol
	LastLogin   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultPermissions permisos por defecto de un rol. Rol desconocido = sin permisos.
func DefaultPermissions(role string) map[string]bool {
	perms := make(map[string]bool, len(AllPermissions))
	for _, p := range AllPermissions {
		perms[p] = false
	}
	switch role {
	case RoleAdmin:
		for _, p := range AllPermissions {
			perms[p] = true
		}
	case RoleManager:
		for _, p := range AllPermissions {
			perms[p] = p != PermUsersManage
		}
	case RoleEditor:
		perms[PermOrdersView] = true
		perms[PermOrdersCreate] = true
		perms[PermOrdersEdit] = true
		perms[PermOrdersImport] = true
		perms[PermStatsView] = true
	case RoleViewer:
		perms[PermOrdersView] = true
		perms[PermStatsView] = true
	}
	return perms
}

// EffectivePermissions combina los permisos del rol con los overrides del usuario.
func (u *CompanyUser) EffectivePermissions() map[string]bool {
	perms := DefaultPermissions(u.Role)
	for k, v := range u.Permissions {
		perms[k] = v
	}
	return perms
}

// Can indica si el usuario está activo y tiene el permiso.
func (u *CompanyUser) Can(permission string) bool {
	if u == nil || !u.IsActive {
		return false
	}
	return u.EffectivePermissions()[permission]
}
