package dto

import "time"

// CreateCompanyUserRequest alta de un usuario de la empresa.
type CreateCompanyUserRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Position    string          `json:"position" validate:"max=200"`
	Role        string          `json:"role" validate:"required,oneof=admin manager editor viewer"`
	IsActive    *bool           `json:"isActive"`
	Permissions map[string]bool `json:"permissions"`
}

// UpdateCompanyUserRequest actualización parcial de datos del usuario.
type UpdateCompanyUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Position *string `json:"position" validate:"omitempty,max=200"`
	IsActive *bool   `json:"isActive"`
}

// UpdateRoleRequest cambio de rol; los permisos vuelven a los del rol.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager editor viewer"`
}

// UpdatePermissionsRequest overrides de permisos que se combinan con los existentes.
type UpdatePermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

// CompanyUserResponse salida de un usuario; Permissions son los permisos efectivos.
type CompanyUserResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Position    string          `json:"position"`
	Role        string          `json:"role"`
	IsActive    bool            `json:"isActive"`
	Permissions map[string]bool `json:"permissions"`
	LastLogin   *time.Time      `json:"lastLogin"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
