package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for staff accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmailAndTower resolves the staff login credential: an email is
	// only valid together with the tower the user signs into.
	FindByEmailAndTower(ctx context.Context, email string, towerID uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
