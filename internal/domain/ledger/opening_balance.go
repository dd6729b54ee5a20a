package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/shared"
)

// OpeningBalance is a tower's carried-forward balance at period start.
type OpeningBalance struct {
	shared.BaseEntity
	TowerID uuid.UUID       `json:"tower_id"`
	Balance decimal.Decimal `json:"balance"`
	Notes   string          `json:"notes"`
	Period  time.Time       `json:"period"`
}

// NewOpeningBalance creates the opening balance for the month containing now.
func NewOpeningBalance(towerID uuid.UUID, balance decimal.Decimal, notes string, now time.Time) (*OpeningBalance, error) {
	if towerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TOWER", "Tower ID cannot be empty")
	}

	return &OpeningBalance{
		BaseEntity: shared.NewBaseEntity(),
		TowerID:    towerID,
		Balance:    balance,
		Notes:      notes,
		Period:     MonthOf(now),
	}, nil
}

// Update replaces the balance and notes.
func (b *OpeningBalance) Update(balance decimal.Decimal, notes string) {
	b.Balance = balance
	b.Notes = notes
	b.UpdatedAt = time.Now()
}
