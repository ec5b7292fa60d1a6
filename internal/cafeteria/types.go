package cafeteria

import "time"

// Store is a vendor's shop. Each store belongs to exactly one user; the
// owning user id is the anchor of every ownership check.
type Store struct {
	ID        int64
	OwnerID   int64
	Name      string
	Phone     string
	Number    string
	Detail    string
	Type      string
	CreatedAt time.Time
}

// NewStore carries the fields accepted at store creation.
type NewStore struct {
	Name   string
	Phone  string
	Number string
	Detail string
	Type   string
}

// Menu is a dish offered by a store.
type Menu struct {
	ID           int64
	StoreID      int64
	CategoryID   int64 // 0 when uncategorized
	CategoryName string
	Name         string
	Detail       string
	Price        float64
	Active       bool
	Image        []byte // raw bytes; base64-encoded at the HTTP edge
}

// NewMenu carries the fields accepted at menu creation.
type NewMenu struct {
	CategoryID int64
	Name       string
	Detail     string
	Price      float64
	Image      []byte
}

// MenuUpdate carries the full replacement state for a menu. A nil Image
// keeps the stored image.
type MenuUpdate struct {
	CategoryID int64
	Name       string
	Detail     string
	Price      float64
	Active     bool
	Image      []byte
}

// QueueItem is one row of the order queue view.
type QueueItem struct {
	QueueNo       int    `json:"queue_no"`
	CustomerName  string `json:"customer_name"`
	ItemName      string `json:"orderitem_name"`
	Quantity      int    `json:"orderitem_quantity"`
	CustomerPhone string `json:"customer_phone"`
}
