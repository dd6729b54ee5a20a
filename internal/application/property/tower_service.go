// Package property implements tower and flat management operations.
package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/property"
)

// TowerService handles tower management operations
type TowerService struct {
	towerRepo property.TowerRepository
}

// NewTowerService creates a new TowerService
func NewTowerService(towerRepo property.TowerRepository) *TowerService {
	return &TowerService{towerRepo: towerRepo}
}

// Create creates a tower
func (s *TowerService) Create(ctx context.Context, req CreateTowerRequest) (*TowerResponse, error) {
	tower, err := property.NewTower(req.Name, req.Address, req.Floors)
	if err != nil {
		return nil, err
	}

	if err := s.towerRepo.Save(ctx, tower); err != nil {
		return nil, err
	}
	return ToTowerResponse(tower), nil
}

// GetByID retrieves a tower
func (s *TowerService) GetByID(ctx context.Context, id uuid.UUID) (*TowerResponse, error) {
	tower, err := s.towerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTowerResponse(tower), nil
}

// List returns all towers
func (s *TowerService) List(ctx context.Context) ([]TowerResponse, error) {
	towers, err := s.towerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TowerResponse, len(towers))
	for i := range towers {
		responses[i] = *ToTowerResponse(&towers[i])
	}
	return responses, nil
}

// ListForSelect returns compact tower entries for selector widgets. With a
// non-empty email it is restricted to the towers of that staff user, which
// is what the login page asks for.
func (s *TowerService) ListForSelect(ctx context.Context, userEmail string) ([]TowerSelectOption, error) {
	var (
		towers []property.Tower
		err    error
	)
	if userEmail != "" {
		towers, err = s.towerRepo.FindByUserEmail(ctx, userEmail)
	} else {
		towers, err = s.towerRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	options := make([]TowerSelectOption, len(towers))
	for i, t := range towers {
		options[i] = TowerSelectOption{ID: t.ID, Name: t.Name}
	}
	return options, nil
}

// Update updates a tower
func (s *TowerService) Update(ctx context.Context, id uuid.UUID, req UpdateTowerRequest) (*TowerResponse, error) {
	tower, err := s.towerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tower.Update(req.Name, req.Address, req.Floors); err != nil {
		return nil, err
	}

	if err := s.towerRepo.Save(ctx, tower); err != nil {
		return nil, err
	}
	return ToTowerResponse(tower), nil
}

// Delete removes a tower
func (s *TowerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.towerRepo.Delete(ctx, id)
}
