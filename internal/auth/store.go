package auth

import "context"

// UserStore describes the persistence operations the credential service
// needs. Implementations must report a username collision from CreateUser as
// ErrAlreadyExists; the database uniqueness constraint is the final
// authority, UsernameTaken is only a fast path.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	UserByUsername(ctx context.Context, username string) (*User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}
