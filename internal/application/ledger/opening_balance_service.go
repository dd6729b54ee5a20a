package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/ledger"
)

// OpeningBalanceService handles tower opening balances
type OpeningBalanceService struct {
	repo ledger.OpeningBalanceRepository
	now  func() time.Time
}

// NewOpeningBalanceService creates a new OpeningBalanceService
func NewOpeningBalanceService(repo ledger.OpeningBalanceRepository) *OpeningBalanceService {
	return &OpeningBalanceService{
		repo: repo,
		now:  time.Now,
	}
}

// Create creates an opening balance for the current month
func (s *OpeningBalanceService) Create(ctx context.Context, towerID uuid.UUID, req CreateOpeningBalanceRequest) (*OpeningBalanceResponse, error) {
	record, err := ledger.NewOpeningBalance(towerID, req.Balance, req.Notes, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToOpeningBalanceResponse(record), nil
}

// GetByID retrieves an opening balance
func (s *OpeningBalanceService) GetByID(ctx context.Context, id uuid.UUID) (*OpeningBalanceResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOpeningBalanceResponse(record), nil
}

// List returns the tower's opening balances matching the filter
func (s *OpeningBalanceService) List(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]OpeningBalanceResponse, error) {
	records, err := s.repo.FindByTower(ctx, towerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OpeningBalanceResponse, len(records))
	for i := range records {
		responses[i] = *ToOpeningBalanceResponse(&records[i])
	}
	return responses, nil
}

// Update updates an opening balance
func (s *OpeningBalanceService) Update(ctx context.Context, req UpdateOpeningBalanceRequest) (*OpeningBalanceResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.Update(req.Balance, req.Notes)

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToOpeningBalanceResponse(record), nil
}

// Delete removes an opening balance
func (s *OpeningBalanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
