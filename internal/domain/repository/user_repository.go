package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios (auth).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
