// Package ledger holds the financial records kept per tower and per flat:
// estimated expenses, settlements, monthly settlements and opening balances.
// Every record carries a Period field, the first day of the calendar month it
// belongs to, which backs the one-record-per-period uniqueness rules.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/shared"
)

// EstimatedExpenses is a tower's projected shared costs for one calendar
// month. At most one row exists per tower per month.
type EstimatedExpenses struct {
	shared.BaseEntity
	TowerID     uuid.UUID `json:"tower_id"`
	CategoryAmounts
	Notes       string    `json:"notes"`
	Attachments []string  `json:"attachments"`
	Period      time.Time `json:"period"`
}

// NewEstimatedExpenses creates the estimate for the month containing now.
func NewEstimatedExpenses(towerID uuid.UUID, amounts CategoryAmounts, notes string, now time.Time) (*EstimatedExpenses, error) {
	if towerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TOWER", "Tower ID cannot be empty")
	}
	if err := amounts.Validate(); err != nil {
		return nil, err
	}

	return &EstimatedExpenses{
		BaseEntity:      shared.NewBaseEntity(),
		TowerID:         towerID,
		CategoryAmounts: amounts,
		Notes:           notes,
		Period:          MonthOf(now),
	}, nil
}

// Update replaces the amounts and notes. The period never changes.
func (e *EstimatedExpenses) Update(amounts CategoryAmounts, notes string) error {
	if err := amounts.Validate(); err != nil {
		return err
	}
	e.CategoryAmounts = amounts
	e.Notes = notes
	e.UpdatedAt = time.Now()
	return nil
}

// SetAttachments replaces the stored media keys.
func (e *EstimatedExpenses) SetAttachments(keys []string) {
	e.Attachments = keys
	e.UpdatedAt = time.Now()
}
