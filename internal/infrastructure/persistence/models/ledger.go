package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/ledger"
)

// EstimatedExpensesModel is the persistence model for monthly tower estimates.
// The (tower_id, period) unique index enforces one estimate per tower per
// calendar month; violations surface as gorm.ErrDuplicatedKey.
type EstimatedExpensesModel struct {
	BaseModel
	TowerID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_estimated_expenses_tower_period"`
	Electricity decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Water       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Waste       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Guard       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Elevator    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Others      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Notes       string          `gorm:"size:2000"`
	Attachments []string        `gorm:"serializer:json"`
	Period      time.Time       `gorm:"not null;uniqueIndex:idx_estimated_expenses_tower_period"`
}

// TableName specifies the table name
func (EstimatedExpensesModel) TableName() string {
	return "estimated_expenses"
}

// ToDomain converts the model to a domain entity
func (m *EstimatedExpensesModel) ToDomain() *ledger.EstimatedExpenses {
	return &ledger.EstimatedExpenses{
		BaseEntity: m.BaseModel.ToDomain(),
		TowerID:    m.TowerID,
		CategoryAmounts: ledger.CategoryAmounts{
			Electricity: m.Electricity,
			Water:       m.Water,
			Waste:       m.Waste,
			Guard:       m.Guard,
			Elevator:    m.Elevator,
			Others:      m.Others,
		},
		Notes:       m.Notes,
		Attachments: m.Attachments,
		Period:      m.Period,
	}
}

// FromDomain populates the model from a domain entity
func (m *EstimatedExpensesModel) FromDomain(e *ledger.EstimatedExpenses) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TowerID = e.TowerID
	m.Electricity = e.Electricity
	m.Water = e.Water
	m.Waste = e.Waste
	m.Guard = e.Guard
	m.Elevator = e.Elevator
	m.Others = e.Others
	m.Notes = e.Notes
	m.Attachments = e.Attachments
	m.Period = e.Period
}

// SettlementModel is the persistence model for per-flat settlements
type SettlementModel struct {
	BaseModel
	FlatID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayedAmount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PayPercentage        int             `gorm:"not null"`
	NetEstimatedExpenses decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Notes                string          `gorm:"size:2000"`
	Period               time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name
func (SettlementModel) TableName() string {
	return "settlements"
}

// ToDomain converts the model to a domain entity
func (m *SettlementModel) ToDomain() *ledger.Settlement {
	return &ledger.Settlement{
		BaseEntity:           m.BaseModel.ToDomain(),
		FlatID:               m.FlatID,
		PayedAmount:          m.PayedAmount,
		PayPercentage:        ledger.PayPercentage(m.PayPercentage),
		NetEstimatedExpenses: m.NetEstimatedExpenses,
		Notes:                m.Notes,
		Period:               m.Period,
	}
}

// FromDomain populates the model from a domain entity
func (m *SettlementModel) FromDomain(s *ledger.Settlement) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.FlatID = s.FlatID
	m.PayedAmount = s.PayedAmount
	m.PayPercentage = int(s.PayPercentage)
	m.NetEstimatedExpenses = s.NetEstimatedExpenses
	m.Notes = s.Notes
	m.Period = s.Period
}

// MonthlySettlementModel is the persistence model for itemised monthly
// reconciliations. Unique per (flat_id, period).
type MonthlySettlementModel struct {
	BaseModel
	FlatID               uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_monthly_settlements_flat_period"`
	Electricity          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Water                decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Waste                decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Guard                decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Elevator             decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Others               decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PayedAmount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	NetEstimatedExpenses decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Notes                string          `gorm:"size:2000"`
	Period               time.Time       `gorm:"not null;uniqueIndex:idx_monthly_settlements_flat_period"`
}

// TableName specifies the table name
func (MonthlySettlementModel) TableName() string {
	return "monthly_settlements"
}

// ToDomain converts the model to a domain entity
func (m *MonthlySettlementModel) ToDomain() *ledger.MonthlySettlement {
	return &ledger.MonthlySettlement{
		BaseEntity: m.BaseModel.ToDomain(),
		FlatID:     m.FlatID,
		CategoryAmounts: ledger.CategoryAmounts{
			Electricity: m.Electricity,
			Water:       m.Water,
			Waste:       m.Waste,
			Guard:       m.Guard,
			Elevator:    m.Elevator,
			Others:      m.Others,
		},
		PayedAmount:          m.PayedAmount,
		NetEstimatedExpenses: m.NetEstimatedExpenses,
		Notes:                m.Notes,
		Period:               m.Period,
	}
}

// FromDomain populates the model from a domain entity
func (m *MonthlySettlementModel) FromDomain(s *ledger.MonthlySettlement) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.FlatID = s.FlatID
	m.Electricity = s.Electricity
	m.Water = s.Water
	m.Waste = s.Waste
	m.Guard = s.Guard
	m.Elevator = s.Elevator
	m.Others = s.Others
	m.PayedAmount = s.PayedAmount
	m.NetEstimatedExpenses = s.NetEstimatedExpenses
	m.Notes = s.Notes
	m.Period = s.Period
}

// OpeningBalanceModel is the persistence model for tower opening balances
type OpeningBalanceModel struct {
	BaseModel
	TowerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Balance decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Notes   string          `gorm:"size:2000"`
	Period  time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name
func (OpeningBalanceModel) TableName() string {
	return "opening_balances"
}

// ToDomain converts the model to a domain entity
func (m *OpeningBalanceModel) ToDomain() *ledger.OpeningBalance {
	return &ledger.OpeningBalance{
		BaseEntity: m.BaseModel.ToDomain(),
		TowerID:    m.TowerID,
		Balance:    m.Balance,
		Notes:      m.Notes,
		Period:     m.Period,
	}
}

// FromDomain populates the model from a domain entity
func (m *OpeningBalanceModel) FromDomain(b *ledger.OpeningBalance) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.TowerID = b.TowerID
	m.Balance = b.Balance
	m.Notes = b.Notes
	m.Period = b.Period
}
