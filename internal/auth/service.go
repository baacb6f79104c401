// Package auth implements credential validation, password hashing, token
// issuance and the register/login/delete pipelines of the account API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"accounts/internal/database"
	"accounts/internal/validation"
)

var (
	// ErrInvalidEmail is returned when the email fails normalization
	ErrInvalidEmail = errors.New("email is not valid")
	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("email already in use")
	// ErrNameRequired is returned when first or last name is missing
	ErrNameRequired = errors.New("first and last name required")
	// ErrWeakPassword is returned when the password fails the policy
	ErrWeakPassword = errors.New("password does not meet requirements")
	// ErrMissingCredentials is returned when email or password is absent
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrUserNotFound is returned when no user matches the email
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match
	ErrInvalidPassword = errors.New("invalid password")
	// ErrRegisterFailed is returned when the insert yields no row
	ErrRegisterFailed = errors.New("unable to register user")
	// ErrDeleteFailed is returned when the deletion yields no row
	ErrDeleteFailed = errors.New("failed to delete user")
)

// Store is the slice of the data-access layer the auth pipelines use.
type Store interface {
	InsertOne(ctx context.Context, table database.Table, data map[string]any) (map[string]any, error)
	FindOne(ctx context.Context, table database.Table, column database.Column, value any) (map[string]any, error)
	DeleteOne(ctx context.Context, table database.Table, column database.Column, value any) map[string]any
	Exists(ctx context.Context, table database.Table, column database.Column, value any) bool
}

// Service defines the account use cases.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (map[string]any, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Delete(ctx context.Context, email string) (map[string]any, error)
}

type service struct {
	db     Store
	tokens *TokenIssuer
	logger *slog.Logger
}

// NewService creates the auth service.
func NewService(db Store, tokens *TokenIssuer, logger *slog.Logger) Service {
	return &service{db: db, tokens: tokens, logger: logger}
}

// Register creates a new user. Pipeline: normalize email, check uniqueness,
// require names, enforce password policy, hash, insert.
func (s *service) Register(ctx context.Context, req RegisterRequest) (map[string]any, error) {
	email := validation.FormatEmail(req.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	if s.db.Exists(ctx, database.TableUsers, database.ColumnEmail, email) {
		return nil, ErrEmailTaken
	}

	if strings.TrimSpace(req.First) == "" || strings.TrimSpace(req.Last) == "" {
		return nil, ErrNameRequired
	}

	if !validation.AllowPassword(req.Password) {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	data := map[string]any{
		"first_name":    strings.TrimSpace(req.First),
		"last_name":     strings.TrimSpace(req.Last),
		"email":         email,
		"password_hash": hash,
	}

	user, err := s.db.InsertOne(ctx, database.TableUsers, data)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if user == nil {
		return nil, ErrRegisterFailed
	}

	s.logger.Info("user registered", "email", email, "id", user["id"])

	return sanitize(user), nil
}

// Login authenticates a user and issues a session token bound to its id.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	email := validation.FormatEmail(req.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	user, err := s.db.FindOne(ctx, database.TableUsers, database.ColumnEmail, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	hash, _ := user["password_hash"].(string)
	if !VerifyPassword(req.Password, hash) {
		return nil, ErrInvalidPassword
	}

	id, _ := user["id"].(string)
	token, err := s.tokens.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &LoginResult{User: sanitize(user), Token: token}, nil
}

// Delete removes the user registered under the given email and returns the
// deleted row.
func (s *service) Delete(ctx context.Context, rawEmail string) (map[string]any, error) {
	email := validation.FormatEmail(rawEmail)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	if !s.db.Exists(ctx, database.TableUsers, database.ColumnEmail, email) {
		return nil, ErrUserNotFound
	}

	user := s.db.DeleteOne(ctx, database.TableUsers, database.ColumnEmail, email)
	if user == nil {
		return nil, ErrDeleteFailed
	}

	s.logger.Info("user deleted", "email", email)

	return sanitize(user), nil
}

// sanitize strips the stored hash from a user row before it leaves the
// service.
func sanitize(user map[string]any) map[string]any {
	delete(user, "password_hash")
	return user
}
