package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/shared"
)

// PayPercentage is the share of the tower's monthly estimate a flat settles.
type PayPercentage int

const (
	PayNone PayPercentage = 0
	PayHalf PayPercentage = 50
	PayFull PayPercentage = 100
)

// IsValid checks whether the percentage is one of the allowed steps.
func (p PayPercentage) IsValid() bool {
	switch p {
	case PayNone, PayHalf, PayFull:
		return true
	}
	return false
}

// Settlement records what a flat paid against the tower's estimated expenses
// for one calendar month. NetEstimatedExpenses is derived at creation time
// from the tower's estimate for that month and the pay percentage.
type Settlement struct {
	shared.BaseEntity
	FlatID                uuid.UUID       `json:"flat_id"`
	PayedAmount           decimal.Decimal `json:"payed_amount"`
	PayPercentage         PayPercentage   `json:"pay_percentage"`
	NetEstimatedExpenses  decimal.Decimal `json:"net_estimated_expenses"`
	Notes                 string          `json:"notes"`
	Period                time.Time       `json:"period"`
}

// NewSettlement creates a settlement for the month containing now.
// monthEstimate is the tower's estimated expenses total for that month.
func NewSettlement(flatID uuid.UUID, payedAmount decimal.Decimal, percentage PayPercentage, monthEstimate decimal.Decimal, notes string, now time.Time) (*Settlement, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if !percentage.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE", "Pay percentage must be 0, 50 or 100")
	}
	if payedAmount.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payed amount cannot be negative")
	}

	return &Settlement{
		BaseEntity:           shared.NewBaseEntity(),
		FlatID:               flatID,
		PayedAmount:          payedAmount,
		PayPercentage:        percentage,
		NetEstimatedExpenses: netShare(monthEstimate, percentage),
		Notes:                notes,
		Period:               MonthOf(now),
	}, nil
}

// Update replaces the settlement details. Settlements are frozen once their
// creation month has passed.
func (s *Settlement) Update(payedAmount decimal.Decimal, percentage PayPercentage, monthEstimate decimal.Decimal, notes string, now time.Time) error {
	if !s.Editable(now) {
		return shared.NewDomainError("SETTLEMENT_LOCKED", "Settlements can only be edited within their creation month")
	}
	if !percentage.IsValid() {
		return shared.NewDomainError("INVALID_PERCENTAGE", "Pay percentage must be 0, 50 or 100")
	}
	if payedAmount.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payed amount cannot be negative")
	}

	s.PayedAmount = payedAmount
	s.PayPercentage = percentage
	s.NetEstimatedExpenses = netShare(monthEstimate, percentage)
	s.Notes = notes
	s.UpdatedAt = now
	return nil
}

// Editable reports whether now still falls in the settlement's month.
func (s *Settlement) Editable(now time.Time) bool {
	return SameMonth(s.CreatedAt, now)
}

// Remaining is the unpaid part of the flat's share.
func (s *Settlement) Remaining() decimal.Decimal {
	return s.NetEstimatedExpenses.Sub(s.PayedAmount)
}

func netShare(monthEstimate decimal.Decimal, percentage PayPercentage) decimal.Decimal {
	return monthEstimate.Mul(decimal.NewFromInt(int64(percentage))).Div(decimal.NewFromInt(100))
}
