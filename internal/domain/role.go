package domain

import "time"

// Role is the lookup table of allowed role strings. User.role does not
// reference it with a foreign key; the application validates against the
// closed enumeration instead.
type Role struct {
	ID        int64     `db:"id" json:"id"`
	Value     string    `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
