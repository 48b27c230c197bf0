package domain

import "time"

// UserStore association statuses.
const (
	UserStoreActive    = "active"
	UserStoreInactive  = "inactive"
	UserStoreSuspended = "suspended"
)

func ValidUserStoreStatus(s string) bool {
	switch s {
	case UserStoreActive, UserStoreInactive, UserStoreSuspended:
		return true
	}
	return false
}

// UserStore joins users and stores; unique on (user_id, store_id).
type UserStore struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	StoreID   int64     `db:"store_id" json:"store_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
