package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/logger"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

// RegisterInput carries the fields of a registration form.
type RegisterInput struct {
	Name        string
	Username    string
	Email       string
	Password    string
	DateOfBirth *time.Time
}

// AuthService handles registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	revoked    auth.RevocationStore
	logger     *logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	revoked auth.RevocationStore,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		revoked:    revoked,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password and returns a session token for it.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrValidationConflict
	}
	if err != nil && !repository.IsNotFound(err) {
		return nil, "", apperrors.StoreFailure(err, "op", "check user existence")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, "", fmt.Errorf("password: %w", apperrors.ErrInvalidInput)
		}
		return nil, "", err
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		DateOfBirth:  in.DateOfBirth,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", apperrors.ErrValidationConflict
		}
		return nil, "", apperrors.StoreFailure(err, "op", "create user")
	}

	token, _, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID.String())
	return user, token, nil
}

// Login checks credentials and returns a fresh session token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.StoreFailure(err, "op", "find user by email")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Logout revokes token for the rest of its lifetime. Missing or invalid tokens are
// ignored since the client discards its cookie either way.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.jwtService.Verify(token)
	if err != nil {
		s.logger.Debug("logout with unusable token", "error", err)
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.ID, s.jwtService.Remaining(claims)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
