package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/property"
)

// TowerResponse is the external representation of a tower.
type TowerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Floors    int       `json:"floors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TowerSelectOption is a compact tower entry for selector widgets.
type TowerSelectOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateTowerRequest creates a tower.
type CreateTowerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
	Floors  int    `json:"floors" binding:"required,gt=0"`
}

// UpdateTowerRequest updates a tower.
type UpdateTowerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
	Floors  int    `json:"floors" binding:"required,gt=0"`
}

// FlatResponse is the external representation of a flat.
type FlatResponse struct {
	ID        uuid.UUID `json:"id"`
	TowerID   uuid.UUID `json:"tower_id"`
	Number    int       `json:"number"`
	Floor     int       `json:"floor"`
	CreatedAt time.Time `json:"created_at"`
}

// FlatSelectOption is a compact flat entry for selector widgets.
type FlatSelectOption struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Floor  int       `json:"floor"`
}

// CreateFlatRequest creates a flat within a tower.
type CreateFlatRequest struct {
	TowerID  string `json:"tower_id" binding:"required,uuid"`
	Number   int    `json:"number" binding:"required,gt=0"`
	Floor    int    `json:"floor" binding:"gte=0"`
	Password string `json:"password"`
}

// UpdateFlatRequest updates a flat. Empty password keeps the current one.
type UpdateFlatRequest struct {
	Number   int    `json:"number" binding:"required,gt=0"`
	Floor    int    `json:"floor" binding:"gte=0"`
	Password string `json:"password"`
}

// ToTowerResponse converts a domain tower to its external representation
func ToTowerResponse(t *property.Tower) *TowerResponse {
	return &TowerResponse{
		ID:        t.ID,
		Name:      t.Name,
		Address:   t.Address,
		Floors:    t.Floors,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToFlatResponse converts a domain flat to its external representation
func ToFlatResponse(f *property.Flat) *FlatResponse {
	return &FlatResponse{
		ID:        f.ID,
		TowerID:   f.TowerID,
		Number:    f.Number,
		Floor:     f.Floor,
		CreatedAt: f.CreatedAt,
	}
}
