package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/pkg/apperror"
	"github.com/jkarimi/dukapos/pkg/utils"
)

// AuthService handles staff registration and login
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, log: log}
}

// Register creates a new staff credential.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return apperror.NewInvalidInputError("Username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.Create(ctx, &entity.User{Username: username, Password: string(hash)}); err != nil {
		return err
	}

	s.log.Info("user registered", zap.String("username", username))
	return nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(username)
	if err != nil {
		return "", err
	}

	s.log.Info("user logged in", zap.String("username", username))
	return token, nil
}

// ResetPassword replaces an existing user's password.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return apperror.NewInvalidInputError("New password is required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, username, string(hash)); err != nil {
		return err
	}

	s.log.Info("password reset", zap.String("username", username))
	return nil
}
