// Package property holds the building registry: towers and the flats they
// contain. A tower is the top-level scoping unit for every ledger record.
package property

import (
	"github.com/towerledger/backend/internal/domain/shared"
)

// Tower represents a managed building.
type Tower struct {
	shared.BaseEntity
	Name    string `json:"name"`
	Address string `json:"address"`
	Floors  int    `json:"floors"`
}

// NewTower creates a new tower.
func NewTower(name, address string, floors int) (*Tower, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tower name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tower name cannot exceed 200 characters")
	}
	if floors <= 0 {
		return nil, shared.NewDomainError("INVALID_FLOORS", "Number of floors must be positive")
	}

	return &Tower{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
		Floors:     floors,
	}, nil
}

// Update replaces the tower details.
func (t *Tower) Update(name, address string, floors int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tower name cannot be empty")
	}
	if floors <= 0 {
		return shared.NewDomainError("INVALID_FLOORS", "Number of floors must be positive")
	}

	t.Name = name
	t.Address = address
	t.Floors = floors
	return nil
}
