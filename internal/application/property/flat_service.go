package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
)

// FlatService handles flat management operations
type FlatService struct {
	flatRepo  property.FlatRepository
	towerRepo property.TowerRepository
}

// NewFlatService creates a new FlatService
func NewFlatService(flatRepo property.FlatRepository, towerRepo property.TowerRepository) *FlatService {
	return &FlatService{
		flatRepo:  flatRepo,
		towerRepo: towerRepo,
	}
}

// Create creates a flat within a tower
func (s *FlatService) Create(ctx context.Context, req CreateFlatRequest) (*FlatResponse, error) {
	towerID, err := uuid.Parse(req.TowerID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOWER", "Invalid tower ID")
	}

	// The tower must exist before a flat can be attached to it
	if _, err := s.towerRepo.FindByID(ctx, towerID); err != nil {
		return nil, err
	}

	flat, err := property.NewFlat(towerID, req.Number, req.Floor)
	if err != nil {
		return nil, err
	}
	if req.Password != "" {
		if err := flat.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		return nil, err
	}
	return ToFlatResponse(flat), nil
}

// GetByID retrieves a flat
func (s *FlatService) GetByID(ctx context.Context, id uuid.UUID) (*FlatResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFlatResponse(flat), nil
}

// ListByTower returns the flats of a tower
func (s *FlatService) ListByTower(ctx context.Context, towerID uuid.UUID) ([]FlatResponse, error) {
	flats, err := s.flatRepo.FindByTower(ctx, towerID)
	if err != nil {
		return nil, err
	}

	responses := make([]FlatResponse, len(flats))
	for i := range flats {
		responses[i] = *ToFlatResponse(&flats[i])
	}
	return responses, nil
}

// ListForSelect returns compact flat entries for selector widgets
func (s *FlatService) ListForSelect(ctx context.Context, towerID uuid.UUID) ([]FlatSelectOption, error) {
	flats, err := s.flatRepo.FindByTower(ctx, towerID)
	if err != nil {
		return nil, err
	}

	options := make([]FlatSelectOption, len(flats))
	for i, f := range flats {
		options[i] = FlatSelectOption{ID: f.ID, Number: f.Number, Floor: f.Floor}
	}
	return options, nil
}

// Update updates a flat
func (s *FlatService) Update(ctx context.Context, id uuid.UUID, req UpdateFlatRequest) (*FlatResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flat.Number = req.Number
	flat.Floor = req.Floor
	if req.Password != "" {
		if err := flat.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		return nil, err
	}
	return ToFlatResponse(flat), nil
}

// Delete removes a flat
func (s *FlatService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.flatRepo.Delete(ctx, id)
}
