package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/shared"
)

// CategoryAmounts holds the per-category shared costs carried by estimated
// expenses and monthly settlements.
type CategoryAmounts struct {
	Electricity decimal.Decimal `json:"electricity"`
	Water       decimal.Decimal `json:"water"`
	Waste       decimal.Decimal `json:"waste"`
	Guard       decimal.Decimal `json:"guard"`
	Elevator    decimal.Decimal `json:"elevator"`
	Others      decimal.Decimal `json:"others"`
}

// Total sums all category amounts.
func (a CategoryAmounts) Total() decimal.Decimal {
	return a.Electricity.
		Add(a.Water).
		Add(a.Waste).
		Add(a.Guard).
		Add(a.Elevator).
		Add(a.Others)
}

// Validate rejects negative category amounts.
func (a CategoryAmounts) Validate() error {
	for _, v := range []decimal.Decimal{a.Electricity, a.Water, a.Waste, a.Guard, a.Elevator, a.Others} {
		if v.LessThan(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Category amounts cannot be negative")
		}
	}
	return nil
}
