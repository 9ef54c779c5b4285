package models

import (
	"time"

	"github.com/google/uuid"
)

// userNamespace scopes the name-based user IDs
var userNamespace = uuid.MustParse("6f1c2b7e-4d8a-5c3e-9a41-2e7b90d5c8f3")

// User represents an authenticated identity, unique per (phone, role)
type User struct {
	ID        string    `json:"id" db:"id"`
	Role      Role      `json:"role" db:"role"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUserID derives a stable identifier from role and phone, so the same
// pair always maps to the same user across stores and restarts.
func NewUserID(role Role, phone string) string {
	return uuid.NewSHA1(userNamespace, []byte(string(role)+":"+phone)).String()
}

// UserView is the public projection returned to clients
type UserView struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Phone string `json:"phone"`
}

// View returns the public projection of u
func (u *User) View() UserView {
	return UserView{ID: u.ID, Role: u.Role, Phone: u.Phone}
}

// UserRegisteredEvent is published the first time a (phone, role) identity is created
type UserRegisteredEvent struct {
	UserID       string    `json:"user_id"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}
