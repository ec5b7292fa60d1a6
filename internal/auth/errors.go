package auth

import "errors"

var (
	ErrNotFound      = errors.New("auth: not found")
	ErrAlreadyExists = errors.New("auth: already exists")
	ErrInvalidInput  = errors.New("auth: invalid input")
	ErrUnauthorized  = errors.New("auth: unauthorized")

	// ErrInvalidToken covers every token defect: bad signature, expiry,
	// malformed structure. Callers must not distinguish between them.
	ErrInvalidToken = errors.New("auth: invalid token")
)
