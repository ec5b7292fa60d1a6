package pg

import (
	"context"
	"database/sql"
	"errors"

	"cafeteria.app/internal/auth"
)

var _ auth.UserStore = (*Store)(nil)

// CreateUser inserts an identity record. The unique index on username is the
// final authority for duplicate signups; a violation surfaces as
// auth.ErrAlreadyExists no matter how the race went.
func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	err := s.db.QueryRowContext(ctx, `
		insert into users(username, email, passwordhash, user_type, fullname, phone)
		values ($1, $2, $3, $4, nullif($5,''), nullif($6,''))
		returning users_id, created_at
	`, u.Username, u.Email, u.PasswordHash, u.UserType, u.FullName, u.Phone).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*auth.User, error) {
	var u auth.User
	err := s.db.QueryRowContext(ctx, `
		select users_id, username, email, passwordhash, user_type,
		       coalesce(fullname, ''), coalesce(phone, ''), created_at
		from users
		where username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.UserType, &u.FullName, &u.Phone, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `select exists(select 1 from users where username = $1)`, username).Scan(&taken)
	if err != nil {
		return false, err
	}
	return taken, nil
}
