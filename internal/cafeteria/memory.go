package cafeteria

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cafeteria.app/internal/auth"
)

// InMemory implements Service and auth.UserStore without a database. It
// backs the HTTP tests and lets the service run without a DSN.
type InMemory struct {
	mu         sync.Mutex
	users      map[int64]*auth.User
	byUsername map[string]int64
	stores     map[int64]Store // keyed by owner id
	menus      map[int64]Menu
	categories map[int64]string
	queue      []QueueItem

	nextUserID  int64
	nextStoreID int64
	nextMenuID  int64
	nextCatID   int64
}

var (
	_ Service        = (*InMemory)(nil)
	_ auth.UserStore = (*InMemory)(nil)
)

// NewInMemory returns an empty in-memory backend.
func NewInMemory() *InMemory {
	return &InMemory{
		users:      make(map[int64]*auth.User),
		byUsername: make(map[string]int64),
		stores:     make(map[int64]Store),
		menus:      make(map[int64]Menu),
		categories: make(map[int64]string),
	}
}

// --- auth.UserStore ---

func (m *InMemory) CreateUser(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byUsername[u.Username]; ok {
		return auth.ErrAlreadyExists
	}
	m.nextUserID++
	u.ID = m.nextUserID
	u.CreatedAt = time.Now().UTC()
	clone := *u
	m.users[u.ID] = &clone
	m.byUsername[u.Username] = u.ID
	return nil
}

func (m *InMemory) UserByUsername(ctx context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byUsername[username]
	if !ok {
		return nil, auth.ErrNotFound
	}
	clone := *m.users[id]
	return &clone, nil
}

func (m *InMemory) UsernameTaken(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byUsername[username]
	return ok, nil
}

// --- Service ---

func (m *InMemory) CreateStore(ctx context.Context, ownerID int64, s NewStore) (Store, error) {
	if strings.TrimSpace(s.Name) == "" {
		return Store{}, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[ownerID]; ok {
		return Store{}, ErrAlreadyExists
	}
	m.nextStoreID++
	store := Store{
		ID:        m.nextStoreID,
		OwnerID:   ownerID,
		Name:      s.Name,
		Phone:     s.Phone,
		Number:    s.Number,
		Detail:    s.Detail,
		Type:      s.Type,
		CreatedAt: time.Now().UTC(),
	}
	m.stores[ownerID] = store
	return store, nil
}

func (m *InMemory) StoreIDForUser(ctx context.Context, ownerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[ownerID]
	if !ok {
		return 0, ErrNotFound
	}
	return store.ID, nil
}

func (m *InMemory) CreateMenu(ctx context.Context, ownerID int64, nm NewMenu) (Menu, error) {
	if strings.TrimSpace(nm.Name) == "" {
		return Menu{}, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[ownerID]
	if !ok {
		return Menu{}, ErrNotFound
	}
	m.nextMenuID++
	menu := Menu{
		ID:           m.nextMenuID,
		StoreID:      store.ID,
		CategoryID:   nm.CategoryID,
		CategoryName: m.categories[nm.CategoryID],
		Name:         nm.Name,
		Detail:       nm.Detail,
		Price:        nm.Price,
		Active:       true,
		Image:        append([]byte(nil), nm.Image...),
	}
	m.menus[menu.ID] = menu
	return menu, nil
}

func (m *InMemory) UpdateMenu(ctx context.Context, ownerID, menuID int64, upd MenuUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, err := m.ownedMenuLocked(ownerID, menuID)
	if err != nil {
		return err
	}
	menu.CategoryID = upd.CategoryID
	menu.CategoryName = m.categories[upd.CategoryID]
	menu.Name = upd.Name
	menu.Detail = upd.Detail
	menu.Price = upd.Price
	menu.Active = upd.Active
	if upd.Image != nil {
		menu.Image = append([]byte(nil), upd.Image...)
	}
	m.menus[menuID] = menu
	return nil
}

func (m *InMemory) DeleteMenu(ctx context.Context, ownerID, menuID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.ownedMenuLocked(ownerID, menuID); err != nil {
		return err
	}
	delete(m.menus, menuID)
	return nil
}

func (m *InMemory) ListMenus(ctx context.Context, ownerID int64) ([]Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[ownerID]
	if !ok {
		return nil, nil
	}
	var res []Menu
	for _, menu := range m.menus {
		if menu.StoreID == store.ID {
			res = append(res, menu)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *InMemory) ListQueue(ctx context.Context) ([]QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QueueItem(nil), m.queue...), nil
}

// ownedMenuLocked resolves a menu only when it belongs to ownerID's store.
// Foreign and missing menus are both ErrNotFound.
func (m *InMemory) ownedMenuLocked(ownerID, menuID int64) (Menu, error) {
	store, ok := m.stores[ownerID]
	if !ok {
		return Menu{}, ErrNotFound
	}
	menu, ok := m.menus[menuID]
	if !ok || menu.StoreID != store.ID {
		return Menu{}, ErrNotFound
	}
	return menu, nil
}

// AddCategory registers a category and returns its id.
func (m *InMemory) AddCategory(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCatID++
	m.categories[m.nextCatID] = name
	return m.nextCatID
}

// AddQueueItem appends a row to the order queue.
func (m *InMemory) AddQueueItem(item QueueItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, item)
}
