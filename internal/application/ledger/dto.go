package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/ledger"
)

// AmountsPayload carries the per-category amounts of a request or response.
type AmountsPayload struct {
	Electricity decimal.Decimal `json:"electricity"`
	Water       decimal.Decimal `json:"water"`
	Waste       decimal.Decimal `json:"waste"`
	Guard       decimal.Decimal `json:"guard"`
	Elevator    decimal.Decimal `json:"elevator"`
	Others      decimal.Decimal `json:"others"`
}

// ToDomain converts the payload to domain category amounts
func (p AmountsPayload) ToDomain() ledger.CategoryAmounts {
	return ledger.CategoryAmounts{
		Electricity: p.Electricity,
		Water:       p.Water,
		Waste:       p.Waste,
		Guard:       p.Guard,
		Elevator:    p.Elevator,
		Others:      p.Others,
	}
}

func amountsPayload(a ledger.CategoryAmounts) AmountsPayload {
	return AmountsPayload{
		Electricity: a.Electricity,
		Water:       a.Water,
		Waste:       a.Waste,
		Guard:       a.Guard,
		Elevator:    a.Elevator,
		Others:      a.Others,
	}
}

// AttachmentUpload is one attachment payload supplied with a create or
// update. Data arrives base64-encoded in JSON bodies.
type AttachmentUpload struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data" binding:"required"`
}

// EstimatedExpensesResponse is the external representation of an estimate.
type EstimatedExpensesResponse struct {
	ID          uuid.UUID       `json:"id"`
	TowerID     uuid.UUID       `json:"tower_id"`
	Amounts     AmountsPayload  `json:"amounts"`
	Total       decimal.Decimal `json:"total"`
	Notes       string          `json:"notes"`
	Attachments []string        `json:"attachments"`
	Period      time.Time       `json:"period"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateEstimatedExpensesRequest creates the estimate for the current month.
type CreateEstimatedExpensesRequest struct {
	Amounts     AmountsPayload     `json:"amounts"`
	Notes       string             `json:"notes" binding:"max=2000"`
	Attachments []AttachmentUpload `json:"attachments"`
}

// UpdateEstimatedExpensesRequest updates an estimate. Non-nil Attachments
// replace the stored ones.
type UpdateEstimatedExpensesRequest struct {
	ID          string             `json:"id" binding:"required,uuid"`
	Amounts     AmountsPayload     `json:"amounts"`
	Notes       string             `json:"notes" binding:"max=2000"`
	Attachments []AttachmentUpload `json:"attachments"`
}

// SettlementResponse is the external representation of a settlement. Flat
// number and floor are joined in for display and export.
type SettlementResponse struct {
	ID                   uuid.UUID       `json:"id"`
	FlatID               uuid.UUID       `json:"flat_id"`
	FlatNumber           int             `json:"flat_number"`
	FlatFloor            int             `json:"flat_floor"`
	PayedAmount          decimal.Decimal `json:"payed_amount"`
	PayPercentage        int             `json:"pay_percentage"`
	NetEstimatedExpenses decimal.Decimal `json:"net_estimated_expenses"`
	Remaining            decimal.Decimal `json:"remaining"`
	Notes                string          `json:"notes"`
	Period               time.Time       `json:"period"`
	CreatedAt            time.Time       `json:"created_at"`
}

// CreateSettlementRequest creates a settlement for the current month.
type CreateSettlementRequest struct {
	FlatID        string          `json:"flat_id" binding:"required,uuid"`
	PayedAmount   decimal.Decimal `json:"payed_amount"`
	PayPercentage int             `json:"pay_percentage" binding:"oneof=0 50 100"`
	Notes         string          `json:"notes" binding:"max=2000"`
}

// UpdateSettlementRequest updates a settlement within its creation month.
type UpdateSettlementRequest struct {
	ID            string          `json:"id" binding:"required,uuid"`
	PayedAmount   decimal.Decimal `json:"payed_amount"`
	PayPercentage int             `json:"pay_percentage" binding:"oneof=0 50 100"`
	Notes         string          `json:"notes" binding:"max=2000"`
}

// MonthlySettlementResponse is the external representation of a monthly
// settlement.
type MonthlySettlementResponse struct {
	ID                   uuid.UUID       `json:"id"`
	FlatID               uuid.UUID       `json:"flat_id"`
	FlatNumber           int             `json:"flat_number"`
	FlatFloor            int             `json:"flat_floor"`
	Amounts              AmountsPayload  `json:"amounts"`
	PayedAmount          decimal.Decimal `json:"payed_amount"`
	NetEstimatedExpenses decimal.Decimal `json:"net_estimated_expenses"`
	Remaining            decimal.Decimal `json:"remaining"`
	Notes                string          `json:"notes"`
	Period               time.Time       `json:"period"`
	CreatedAt            time.Time       `json:"created_at"`
}

// CreateMonthlySettlementRequest creates a monthly settlement for the
// current month.
type CreateMonthlySettlementRequest struct {
	FlatID      string          `json:"flat_id" binding:"required,uuid"`
	Amounts     AmountsPayload  `json:"amounts"`
	PayedAmount decimal.Decimal `json:"payed_amount"`
	Notes       string          `json:"notes" binding:"max=2000"`
}

// UpdateMonthlySettlementRequest updates a monthly settlement within its
// creation month.
type UpdateMonthlySettlementRequest struct {
	ID          string          `json:"id" binding:"required,uuid"`
	Amounts     AmountsPayload  `json:"amounts"`
	PayedAmount decimal.Decimal `json:"payed_amount"`
	Notes       string          `json:"notes" binding:"max=2000"`
}

// OpeningBalanceResponse is the external representation of an opening
// balance.
type OpeningBalanceResponse struct {
	ID        uuid.UUID       `json:"id"`
	TowerID   uuid.UUID       `json:"tower_id"`
	Balance   decimal.Decimal `json:"balance"`
	Notes     string          `json:"notes"`
	Period    time.Time       `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateOpeningBalanceRequest creates an opening balance.
type CreateOpeningBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Notes   string          `json:"notes" binding:"max=2000"`
}

// UpdateOpeningBalanceRequest updates an opening balance.
type UpdateOpeningBalanceRequest struct {
	ID      string          `json:"id" binding:"required,uuid"`
	Balance decimal.Decimal `json:"balance"`
	Notes   string          `json:"notes" binding:"max=2000"`
}

// ToEstimatedExpensesResponse converts a domain estimate
func ToEstimatedExpensesResponse(e *ledger.EstimatedExpenses) *EstimatedExpensesResponse {
	return &EstimatedExpensesResponse{
		ID:          e.ID,
		TowerID:     e.TowerID,
		Amounts:     amountsPayload(e.CategoryAmounts),
		Total:       e.Total(),
		Notes:       e.Notes,
		Attachments: e.Attachments,
		Period:      e.Period,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToOpeningBalanceResponse converts a domain opening balance
func ToOpeningBalanceResponse(b *ledger.OpeningBalance) *OpeningBalanceResponse {
	return &OpeningBalanceResponse{
		ID:        b.ID,
		TowerID:   b.TowerID,
		Balance:   b.Balance,
		Notes:     b.Notes,
		Period:    b.Period,
		CreatedAt: b.CreatedAt,
	}
}
