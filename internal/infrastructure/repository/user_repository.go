package repository

import (
	"context"
	"sync"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/internal/infrastructure/store"
	"github.com/jkarimi/dukapos/pkg/apperror"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]string // username -> password hash
	path  string
}

// NewUserRepository loads the credentials snapshot from path. The file maps
// usernames to password strings.
func NewUserRepository(path string) (repository.UserRepository, error) {
	users, err := store.Load(path, map[string]string{})
	if err != nil {
		return nil, err
	}
	return &userRepository{users: users, path: path}, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hash, exists := r.users[username]
	if !exists {
		return nil, nil
	}
	return &entity.User{Username: username, Password: hash}, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return apperror.NewAppError(409, apperror.KindDuplicateID, "User already exists")
	}

	r.users[user.Username] = user.Password
	return store.Save(r.path, r.users)
}

func (r *userRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; !exists {
		return apperror.NewNotFoundError("User")
	}

	r.users[username] = passwordHash
	return store.Save(r.path, r.users)
}
