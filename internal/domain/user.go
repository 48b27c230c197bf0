package domain

import "time"

// User roles. User.role is a free string column with a default; the closed
// enumeration is enforced at the validation boundary, not by the schema.
const (
	RolePlatformAdmin = "platform-admin"
	RoleStoreAdmin    = "store-admin"
	RoleCustomer      = "customer"
)

// ValidRole reports whether s is one of the three known role values.
func ValidRole(s string) bool {
	switch s {
	case RolePlatformAdmin, RoleStoreAdmin, RoleCustomer:
		return true
	}
	return false
}

// User belongs to one company and is many-to-many with stores via UserStore.
// PasswordHash is the bcrypt hash; it never leaves the repository layer in
// API responses.
type User struct {
	ID           int64     `db:"id" json:"id"`
	CompanyID    int64     `db:"company_id" json:"company_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsPlatformAdmin reports whether the user bypasses tenant scoping.
func (u *User) IsPlatformAdmin() bool { return u.Role == RolePlatformAdmin }
