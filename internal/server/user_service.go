package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/config"
	"github.com/jonathan/career-prep/internal/db"
	"github.com/jonathan/career-prep/internal/types"
)

// UserService holds the account rules behind the /auth endpoints.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService storing accounts in database.
func NewUserService(database DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{db: database, passwordConfig: passwordConfig}
}

// Register creates an account and returns its public view.
// Emails are compared case-insensitively.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.db.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if taken {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	id, err := s.db.CreateUser(ctx, strings.TrimSpace(req.Name), email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	account, err := s.account(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// Login checks credentials. An unknown email and a wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	account, err := s.db.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if account == nil || !s.passwordConfig.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return account.Public(), nil
}

// Me returns the caller's public view.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	account, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// UpdatePassword replaces the password after checking the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	account, err := s.account(ctx, userID)
	if err != nil {
		return err
	}
	if !s.passwordConfig.VerifyPassword(current, account.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	hash, err := s.passwordConfig.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.db.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	return nil
}

// account loads a user row, mapping a missing row to ErrUserNotFound.
func (s *UserService) account(ctx context.Context, id uuid.UUID) (*db.User, error) {
	account, err := s.db.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if account == nil {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return account, nil
}
