package pg

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"cafeteria.app/internal/auth"
	"cafeteria.app/internal/cafeteria"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "store_users_id_key"}
}

func TestCreateStore(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Now().UTC()

	mock.ExpectQuery("insert into store").
		WithArgs(int64(7), "Kitchen", "", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"store_id", "store_create"}).AddRow(int64(3), created))

	s, err := store.CreateStore(context.Background(), 7, cafeteria.NewStore{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	if s.ID != 3 || s.OwnerID != 7 || !s.CreatedAt.Equal(created) {
		t.Fatalf("unexpected store: %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateStoreDuplicateOwner(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("insert into store").
		WithArgs(int64(7), "Kitchen", "", "", "", "").
		WillReturnError(uniqueViolation())

	_, err := store.CreateStore(context.Background(), 7, cafeteria.NewStore{Name: "Kitchen"})
	if !errors.Is(err, cafeteria.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestStoreIDForUserNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select store_id from store").
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	if _, err := store.StoreIDForUser(context.Background(), 9); !errors.Is(err, cafeteria.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateMenuResolvesStore(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select store_id from store").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"store_id"}).AddRow(int64(3)))
	mock.ExpectQuery("insert into menu").
		WithArgs(int64(3), int64(0), "Soup", "", 12.5, []byte(nil)).
		WillReturnRows(sqlmock.NewRows([]string{"menu_id"}).AddRow(int64(11)))

	menu, err := store.CreateMenu(context.Background(), 7, cafeteria.NewMenu{Name: "Soup", Price: 12.5})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}
	if menu.ID != 11 || menu.StoreID != 3 || !menu.Active {
		t.Fatalf("unexpected menu: %+v", menu)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMenuWithoutStore(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select store_id from store").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	if _, err := store.CreateMenu(context.Background(), 7, cafeteria.NewMenu{Name: "Soup"}); !errors.Is(err, cafeteria.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMenuKeepsImageWhenNil(t *testing.T) {
	store, mock := newMockStore(t)
	existing := []byte{1, 2, 3}

	mock.ExpectBegin()
	mock.ExpectQuery("select menu.menu_img").
		WithArgs(int64(11), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"menu_img"}).AddRow(existing))
	mock.ExpectExec("update menu").
		WithArgs(int64(11), int64(0), "Soup", "hot", 13.0, true, existing).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.UpdateMenu(context.Background(), 7, 11, cafeteria.MenuUpdate{
		Name: "Soup", Detail: "hot", Price: 13, Active: true,
	})
	if err != nil {
		t.Fatalf("UpdateMenu: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMenuForeignOrMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("select menu.menu_img").
		WithArgs(int64(11), int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := store.UpdateMenu(context.Background(), 99, 11, cafeteria.MenuUpdate{Name: "x"})
	if !errors.Is(err, cafeteria.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMenuNotOwned(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("delete from menu").
		WithArgs(int64(11), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteMenu(context.Background(), 99, 11); !errors.Is(err, cafeteria.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMenuOwned(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("delete from menu").
		WithArgs(int64(11), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.DeleteMenu(context.Background(), 7, 11); err != nil {
		t.Fatalf("DeleteMenu: %v", err)
	}
}

func TestListMenus(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"menu_id", "store_id", "category_id", "category_name",
		"menu_name", "menu_detail", "menu_price", "menu_state", "menu_img",
	}).
		AddRow(int64(1), int64(3), int64(2), "Noodles", "Pad Thai", "stir fried", 45.5, true, []byte{9}).
		AddRow(int64(2), int64(3), int64(0), "", "Water", "", 10.0, false, []byte(nil))

	mock.ExpectQuery("select m.menu_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	menus, err := store.ListMenus(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListMenus: %v", err)
	}
	if len(menus) != 2 {
		t.Fatalf("expected 2 menus, got %d", len(menus))
	}
	if menus[0].CategoryName != "Noodles" || menus[0].Price != 45.5 || string(menus[0].Image) != string([]byte{9}) {
		t.Fatalf("unexpected first menu: %+v", menus[0])
	}
	if menus[1].CategoryID != 0 || menus[1].Active {
		t.Fatalf("unexpected second menu: %+v", menus[1])
	}
}

func TestListQueue(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"queue_no", "customer_name", "orderitem_name", "orderitem_quantity", "customer_phone",
	}).
		AddRow(1, "Dana", "Pad Thai", 2, "555-0101").
		AddRow(2, "Eli", "Soup", 1, "")

	mock.ExpectQuery("select q.queue_no").WillReturnRows(rows)

	items, err := store.ListQueue(context.Background())
	if err != nil {
		t.Fatalf("ListQueue: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].QueueNo != 1 || items[0].CustomerName != "Dana" || items[0].Quantity != 2 {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("insert into users").
		WithArgs("alice", "alice@example.com", "hash", "vendor", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := store.CreateUser(context.Background(), &auth.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		UserType:     "vendor",
	})
	if !errors.Is(err, auth.ErrAlreadyExists) {
		t.Fatalf("expected auth.ErrAlreadyExists, got %v", err)
	}
}

func TestCreateUserAssignsID(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Now().UTC()

	mock.ExpectQuery("insert into users").
		WithArgs("bob", "bob@example.com", "hash", "customer", "Bob", "555").
		WillReturnRows(sqlmock.NewRows([]string{"users_id", "created_at"}).AddRow(int64(5), created))

	u := &auth.User{
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		UserType:     "customer",
		FullName:     "Bob",
		Phone:        "555",
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 5 || !u.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserByUsernameNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select users_id, username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	if _, err := store.UserByUsername(context.Background(), "ghost"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected auth.ErrNotFound, got %v", err)
	}
}

func TestUsernameTaken(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select exists").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := store.UsernameTaken(context.Background(), "alice")
	if err != nil || !taken {
		t.Fatalf("UsernameTaken = %v, %v", taken, err)
	}
}
