package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists users. Lookups by email are case-insensitive and
// return shared.ErrNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Count is used to promote the very first account to admin
	Count(ctx context.Context) (int64, error)
}
