package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Service implements the credential flows: signup registration and password
// verification at signin.
type Service struct {
	store UserStore
}

// NewService constructs a credential service over the given user store.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// RegisterRequest carries the signup fields. FullName and Phone are optional.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	UserType string
	FullName string
	Phone    string
}

// Register validates the request, hashes the password, and persists a new
// user record. A username collision is reported as ErrAlreadyExists; the
// pre-check against the store is only a fast path, the database uniqueness
// constraint decides races.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	userType := strings.ToLower(strings.TrimSpace(req.UserType))

	if username == "" || email == "" || req.Password == "" || userType == "" {
		return ErrInvalidInput
	}
	if userType != UserTypeVendor && userType != UserTypeCustomer {
		return fmt.Errorf("%w: unknown user type %q", ErrInvalidInput, userType)
	}

	taken, err := s.store.UsernameTaken(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrAlreadyExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		UserType:     userType,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
	}
	return s.store.CreateUser(ctx, user)
}

// Verify checks the presented password against the stored hash. An unknown
// username and a wrong password both return ErrUnauthorized so the caller
// cannot enumerate accounts. The plaintext password is never retained.
func (s *Service) Verify(ctx context.Context, username, password string) (Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Identity{}, ErrUnauthorized
	}
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return Identity{}, ErrUnauthorized
	}
	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		UserType: user.UserType,
	}, nil
}
