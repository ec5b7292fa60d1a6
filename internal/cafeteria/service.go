package cafeteria

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("cafeteria: not found")
	ErrAlreadyExists = errors.New("cafeteria: already exists")
	ErrInvalidInput  = errors.New("cafeteria: invalid input")
)

// Service is the store/menu/order surface of the backend. Every ownership
// check lives inside the operation itself: a caller can only see or mutate
// menus reachable through their own store, and a menu owned by someone else
// is indistinguishable from a missing one (ErrNotFound for both).
type Service interface {
	// CreateStore creates the caller's store. A user owns at most one
	// store; a second create returns ErrAlreadyExists.
	CreateStore(ctx context.Context, ownerID int64, s NewStore) (Store, error)

	// StoreIDForUser resolves the caller's store id, ErrNotFound when the
	// user has not created a store yet.
	StoreIDForUser(ctx context.Context, ownerID int64) (int64, error)

	// CreateMenu adds a menu under the caller's store.
	CreateMenu(ctx context.Context, ownerID int64, m NewMenu) (Menu, error)

	// UpdateMenu replaces a menu's fields. A nil MenuUpdate.Image keeps
	// the stored image.
	UpdateMenu(ctx context.Context, ownerID, menuID int64, m MenuUpdate) error

	// DeleteMenu removes a menu owned by the caller.
	DeleteMenu(ctx context.Context, ownerID, menuID int64) error

	// ListMenus returns the caller's menus with resolved category names.
	ListMenus(ctx context.Context, ownerID int64) ([]Menu, error)

	// ListQueue returns the current order queue.
	ListQueue(ctx context.Context) ([]QueueItem, error)
}
