package repository

import (
	"context"

	"shopd/internal/domain"
)

// UsersRepository manages accounts. Email is unique across all companies;
// lookups by email therefore ignore tenant scope (login happens before a
// tenant is known).
type UsersRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filters UserFilters) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
	Update(ctx context.Context, id int64, upd UserUpdate) error
	Delete(ctx context.Context, id int64) error
}

// UserFilters narrows user listings.
type UserFilters struct {
	CompanyID int64
	Role      string
	Search    string // substring on name/email
}

// UserUpdate applies a partial field merge. PasswordHash must already be
// hashed; repositories never see plaintext.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}
