package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/audit"
)

// UserLogModel is the persistence model for audit entries. Entries are
// append-only, so there is no UpdatedAt column.
type UserLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"size:100;not null;index"`
	Status    bool       `gorm:"not null"`
	Details   string     `gorm:"size:2000"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

// TableName specifies the table name
func (UserLogModel) TableName() string {
	return "user_logs"
}

// ToDomain converts the model to a domain entity
func (m *UserLogModel) ToDomain() *audit.UserLog {
	return &audit.UserLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Status:    m.Status,
		Details:   m.Details,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the model from a domain entity
func (m *UserLogModel) FromDomain(e *audit.UserLog) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.Action = e.Action
	m.Status = e.Status
	m.Details = e.Details
	m.CreatedAt = e.CreatedAt
}
