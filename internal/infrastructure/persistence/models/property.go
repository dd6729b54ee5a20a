package models

import (
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/property"
)

// TowerModel is the persistence model for towers
type TowerModel struct {
	BaseModel
	Name    string `gorm:"size:200;not null"`
	Address string `gorm:"size:500"`
	Floors  int    `gorm:"not null"`
}

// TableName specifies the table name
func (TowerModel) TableName() string {
	return "towers"
}

// ToDomain converts the model to a domain entity
func (m *TowerModel) ToDomain() *property.Tower {
	return &property.Tower{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Floors:     m.Floors,
	}
}

// FromDomain populates the model from a domain entity
func (m *TowerModel) FromDomain(t *property.Tower) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Address = t.Address
	m.Floors = t.Floors
}

// FlatModel is the persistence model for flats
type FlatModel struct {
	BaseModel
	TowerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Number       int       `gorm:"not null"`
	Floor        int       `gorm:"not null"`
	PasswordHash string    `gorm:"size:100"`
}

// TableName specifies the table name
func (FlatModel) TableName() string {
	return "flats"
}

// ToDomain converts the model to a domain entity
func (m *FlatModel) ToDomain() *property.Flat {
	return &property.Flat{
		BaseEntity:   m.BaseModel.ToDomain(),
		TowerID:      m.TowerID,
		Number:       m.Number,
		Floor:        m.Floor,
		PasswordHash: m.PasswordHash,
	}
}

// FromDomain populates the model from a domain entity
func (m *FlatModel) FromDomain(f *property.Flat) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.TowerID = f.TowerID
	m.Number = f.Number
	m.Floor = f.Floor
	m.PasswordHash = f.PasswordHash
}
