package domain

import "time"

// Company is the tenant: the unit of data isolation. Deleting a company
// cascades to its stores and users at the schema level.
type Company struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Plan      string    `db:"plan" json:"plan"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
