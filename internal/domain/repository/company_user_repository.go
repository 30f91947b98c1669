package repository

import (
	"context"

	"github.com/jhoicas/comex-crm/internal/domain/entity"
)

// CompanyUserRepository define el puerto de persistencia para CompanyUser.
type CompanyUserRepository interface {
	Create(ctx context.Context, u *entity.CompanyUser) error
	GetByID(ctx context.Context, id string) (*entity.CompanyUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.CompanyUser, error)
	List(ctx context.Context) ([]*entity.CompanyUser, error)
	Update(ctx context.Context, u *entity.CompanyUser) error
	Delete(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string) error
}
