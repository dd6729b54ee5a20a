package models

import (
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/identity"
)

// UserModel is the persistence model for staff accounts
type UserModel struct {
	BaseModel
	UserName     string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	Phone        string     `gorm:"size:50"`
	PasswordHash string     `gorm:"size:100;not null"`
	Role         string     `gorm:"size:20;not null"`
	Image        string     `gorm:"size:500"`
	TowerID      *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserName:     m.UserName,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		Image:        m.Image,
		TowerID:      m.TowerID,
	}
}

// FromDomain populates the model from a domain entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.UserName = u.UserName
	m.Email = u.Email
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Role = string(u.Role)
	m.Image = u.Image
	m.TowerID = u.TowerID
}
