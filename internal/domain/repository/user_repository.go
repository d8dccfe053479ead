package repository

import (
	"context"

	"github.com/jkarimi/dukapos/internal/domain/entity"
)

// UserRepository defines the interface for staff credential storage.
type UserRepository interface {
	// GetByUsername returns nil without error when the user is absent.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
