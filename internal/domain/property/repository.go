package property

import (
	"context"

	"github.com/google/uuid"
)

// TowerRepository defines persistence operations for towers.
type TowerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tower, error)
	FindAll(ctx context.Context) ([]Tower, error)
	// FindByUserEmail returns the towers a staff user may work in; the login
	// page uses it to populate the tower selector for an email address.
	FindByUserEmail(ctx context.Context, email string) ([]Tower, error)
	Save(ctx context.Context, tower *Tower) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// FlatRepository defines persistence operations for flats.
type FlatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Flat, error)
	FindByTower(ctx context.Context, towerID uuid.UUID) ([]Flat, error)
	// FindByNumberAndFloor resolves the flat-owner login credential.
	FindByNumberAndFloor(ctx context.Context, number, floor int) (*Flat, error)
	Save(ctx context.Context, flat *Flat) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
