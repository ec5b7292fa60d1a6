package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"cafeteria.app/internal/cafeteria"
)

// Store implements cafeteria.Service and auth.UserStore on PostgreSQL.
// Every query is parameterized, and ownership predicates live inside the
// SQL itself so a foreign resource and a missing one produce the same
// ErrNotFound.
type Store struct {
	db *sql.DB
}

var _ cafeteria.Service = (*Store)(nil)

// Open connects to PostgreSQL with pool defaults tuned for a small API.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection. Used by tests.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) CreateStore(ctx context.Context, ownerID int64, ns cafeteria.NewStore) (cafeteria.Store, error) {
	if strings.TrimSpace(ns.Name) == "" {
		return cafeteria.Store{}, cafeteria.ErrInvalidInput
	}
	store := cafeteria.Store{
		OwnerID: ownerID,
		Name:    ns.Name,
		Phone:   ns.Phone,
		Number:  ns.Number,
		Detail:  ns.Detail,
		Type:    ns.Type,
	}
	err := s.db.QueryRowContext(ctx, `
		insert into store(users_id, store_name, store_phone, store_num, store_detail, store_create, store_type)
		values ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), now(), nullif($6,''))
		returning store_id, store_create
	`, ownerID, ns.Name, ns.Phone, ns.Number, ns.Detail, ns.Type).Scan(&store.ID, &store.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return cafeteria.Store{}, cafeteria.ErrAlreadyExists
		}
		return cafeteria.Store{}, err
	}
	return store, nil
}

func (s *Store) StoreIDForUser(ctx context.Context, ownerID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `select store_id from store where users_id=$1`, ownerID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, cafeteria.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) CreateMenu(ctx context.Context, ownerID int64, nm cafeteria.NewMenu) (cafeteria.Menu, error) {
	if strings.TrimSpace(nm.Name) == "" {
		return cafeteria.Menu{}, cafeteria.ErrInvalidInput
	}
	storeID, err := s.StoreIDForUser(ctx, ownerID)
	if err != nil {
		return cafeteria.Menu{}, err
	}
	menu := cafeteria.Menu{
		StoreID:    storeID,
		CategoryID: nm.CategoryID,
		Name:       nm.Name,
		Detail:     nm.Detail,
		Price:      nm.Price,
		Active:     true,
		Image:      nm.Image,
	}
	err = s.db.QueryRowContext(ctx, `
		insert into menu(store_id, category_id, menu_name, menu_detail, menu_price, menu_state, menu_img)
		values ($1, nullif($2, 0), $3, $4, $5, true, $6)
		returning menu_id
	`, storeID, nm.CategoryID, nm.Name, nm.Detail, nm.Price, nm.Image).Scan(&menu.ID)
	if err != nil {
		return cafeteria.Menu{}, err
	}
	return menu, nil
}

func (s *Store) UpdateMenu(ctx context.Context, ownerID, menuID int64, upd cafeteria.MenuUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Ownership and current image in one read; foreign and missing menus
	// are both no rows here.
	var existing []byte
	err = tx.QueryRowContext(ctx, `
		select menu.menu_img
		from menu
		inner join store on menu.store_id = store.store_id
		where menu.menu_id = $1 and store.users_id = $2
	`, menuID, ownerID).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return cafeteria.ErrNotFound
	}
	if err != nil {
		return err
	}

	img := existing
	if upd.Image != nil {
		img = upd.Image
	}
	if _, err := tx.ExecContext(ctx, `
		update menu
		set category_id = nullif($2, 0), menu_name = $3, menu_detail = $4,
		    menu_price = $5, menu_state = $6, menu_img = $7
		where menu_id = $1
	`, menuID, upd.CategoryID, upd.Name, upd.Detail, upd.Price, upd.Active, img); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteMenu(ctx context.Context, ownerID, menuID int64) error {
	res, err := s.db.ExecContext(ctx, `
		delete from menu
		using store
		where menu.store_id = store.store_id and menu.menu_id = $1 and store.users_id = $2
	`, menuID, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cafeteria.ErrNotFound
	}
	return nil
}

func (s *Store) ListMenus(ctx context.Context, ownerID int64) ([]cafeteria.Menu, error) {
	rows, err := s.db.QueryContext(ctx, `
		select m.menu_id, m.store_id, coalesce(m.category_id, 0), coalesce(c.category_name, ''),
		       m.menu_name, m.menu_detail, m.menu_price, m.menu_state, m.menu_img
		from menu m
		left join category c on c.category_id = m.category_id
		inner join store s on s.store_id = m.store_id
		where s.users_id = $1
		order by m.menu_id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []cafeteria.Menu
	for rows.Next() {
		var m cafeteria.Menu
		if err := rows.Scan(&m.ID, &m.StoreID, &m.CategoryID, &m.CategoryName,
			&m.Name, &m.Detail, &m.Price, &m.Active, &m.Image); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (s *Store) ListQueue(ctx context.Context) ([]cafeteria.QueueItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		select q.queue_no, c.customer_name, oi.orderitem_name, oi.orderitem_quantity, coalesce(c.customer_phone, '')
		from orderitem oi
		inner join orders o on oi.order_id = o.order_id
		inner join queues q on q.order_id = o.order_id
		inner join customer c on o.customer_id = c.customer_id
		order by q.queue_no, oi.orderitem_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []cafeteria.QueueItem
	for rows.Next() {
		var item cafeteria.QueueItem
		if err := rows.Scan(&item.QueueNo, &item.CustomerName, &item.ItemName, &item.Quantity, &item.CustomerPhone); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

// isUniqueViolation reports PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
