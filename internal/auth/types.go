package auth

import "time"

// Account types carried in the user_type column and the token role claim.
const (
	UserTypeVendor   = "vendor"
	UserTypeCustomer = "customer"
)

// User is the persisted identity record. Immutable after signup.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	UserType     string
	FullName     string
	Phone        string
	CreatedAt    time.Time
}

// Identity is the verified subset of a user handed to the token service.
// It never carries the password hash.
type Identity struct {
	UserID   int64
	Username string
	UserType string
}
