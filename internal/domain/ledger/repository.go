package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows tower-scoped record listings. The zero value lists
// everything for the tower, newest first.
type ListFilter struct {
	// Month restricts results to the calendar month containing it.
	Month *time.Time
	// Search is a case-insensitive substring match on the notes field.
	Search string
}

// EstimatedExpensesRepository defines persistence for monthly tower estimates.
type EstimatedExpensesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EstimatedExpenses, error)
	FindByTower(ctx context.Context, towerID uuid.UUID, filter ListFilter) ([]EstimatedExpenses, error)
	// FindByTowerAndMonth returns the single estimate for the month, or
	// shared.ErrNotFound when none exists. Settlement creation uses it to
	// derive the flat's share.
	FindByTowerAndMonth(ctx context.Context, towerID uuid.UUID, month time.Time) (*EstimatedExpenses, error)
	Save(ctx context.Context, record *EstimatedExpenses) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// SettlementRepository defines persistence for per-flat settlements. Tower
// scoping goes through the flat relation.
type SettlementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Settlement, error)
	FindByTower(ctx context.Context, towerID uuid.UUID, filter ListFilter) ([]Settlement, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID, filter ListFilter) ([]Settlement, error)
	Save(ctx context.Context, record *Settlement) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// MonthlySettlementRepository defines persistence for itemised monthly
// reconciliations.
type MonthlySettlementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MonthlySettlement, error)
	FindByTower(ctx context.Context, towerID uuid.UUID, filter ListFilter) ([]MonthlySettlement, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID, filter ListFilter) ([]MonthlySettlement, error)
	Save(ctx context.Context, record *MonthlySettlement) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// OpeningBalanceRepository defines persistence for tower opening balances.
type OpeningBalanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OpeningBalance, error)
	FindByTower(ctx context.Context, towerID uuid.UUID, filter ListFilter) ([]OpeningBalance, error)
	Save(ctx context.Context, record *OpeningBalance) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
