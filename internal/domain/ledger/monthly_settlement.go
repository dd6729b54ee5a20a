package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/shared"
)

// MonthlySettlement is a flat's itemised monthly reconciliation. Unlike a
// plain settlement it carries its own per-category amounts, and the net is
// their sum rather than a percentage of the tower estimate. At most one row
// exists per flat per month.
type MonthlySettlement struct {
	shared.BaseEntity
	FlatID               uuid.UUID `json:"flat_id"`
	CategoryAmounts
	PayedAmount          decimal.Decimal `json:"payed_amount"`
	NetEstimatedExpenses decimal.Decimal `json:"net_estimated_expenses"`
	Notes                string          `json:"notes"`
	Period               time.Time       `json:"period"`
}

// NewMonthlySettlement creates the reconciliation for the month containing now.
func NewMonthlySettlement(flatID uuid.UUID, amounts CategoryAmounts, payedAmount decimal.Decimal, notes string, now time.Time) (*MonthlySettlement, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat ID cannot be empty")
	}
	if err := amounts.Validate(); err != nil {
		return nil, err
	}
	if payedAmount.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payed amount cannot be negative")
	}

	return &MonthlySettlement{
		BaseEntity:           shared.NewBaseEntity(),
		FlatID:               flatID,
		CategoryAmounts:      amounts,
		PayedAmount:          payedAmount,
		NetEstimatedExpenses: amounts.Total(),
		Notes:                notes,
		Period:               MonthOf(now),
	}, nil
}

// Update replaces the amounts and recomputes the net. Frozen once the
// creation month has passed.
func (m *MonthlySettlement) Update(amounts CategoryAmounts, payedAmount decimal.Decimal, notes string, now time.Time) error {
	if !m.Editable(now) {
		return shared.NewDomainError("SETTLEMENT_LOCKED", "Settlements can only be edited within their creation month")
	}
	if err := amounts.Validate(); err != nil {
		return err
	}
	if payedAmount.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payed amount cannot be negative")
	}

	m.CategoryAmounts = amounts
	m.PayedAmount = payedAmount
	m.NetEstimatedExpenses = amounts.Total()
	m.Notes = notes
	m.UpdatedAt = now
	return nil
}

// Editable reports whether now still falls in the settlement's month.
func (m *MonthlySettlement) Editable(now time.Time) bool {
	return SameMonth(m.CreatedAt, now)
}

// Remaining is the unpaid part of the flat's reconciliation.
func (m *MonthlySettlement) Remaining() decimal.Decimal {
	return m.NetEstimatedExpenses.Sub(m.PayedAmount)
}
