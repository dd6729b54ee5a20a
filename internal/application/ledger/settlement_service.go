package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
)

// SettlementService handles per-flat settlements
type SettlementService struct {
	repo          ledger.SettlementRepository
	estimatesRepo ledger.EstimatedExpensesRepository
	flatRepo      property.FlatRepository
	now           func() time.Time
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	repo ledger.SettlementRepository,
	estimatesRepo ledger.EstimatedExpensesRepository,
	flatRepo property.FlatRepository,
) *SettlementService {
	return &SettlementService{
		repo:          repo,
		estimatesRepo: estimatesRepo,
		flatRepo:      flatRepo,
		now:           time.Now,
	}
}

// monthEstimate is the tower's estimated expenses total for the month. A
// missing estimate counts as zero.
func (s *SettlementService) monthEstimate(ctx context.Context, towerID uuid.UUID, month time.Time) (decimal.Decimal, error) {
	estimate, err := s.estimatesRepo.FindByTowerAndMonth(ctx, towerID, month)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return estimate.Total(), nil
}

// Create creates a settlement for the current month
func (s *SettlementService) Create(ctx context.Context, req CreateSettlementRequest) (*SettlementResponse, error) {
	flatID, err := uuid.Parse(req.FlatID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Invalid flat ID")
	}

	flat, err := s.flatRepo.FindByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	estimate, err := s.monthEstimate(ctx, flat.TowerID, now)
	if err != nil {
		return nil, err
	}

	record, err := ledger.NewSettlement(flatID, req.PayedAmount, ledger.PayPercentage(req.PayPercentage), estimate, req.Notes, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return s.toResponse(record, flat), nil
}

// GetByID retrieves a settlement
func (s *SettlementService) GetByID(ctx context.Context, id uuid.UUID) (*SettlementResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flat, err := s.flatRepo.FindByID(ctx, record.FlatID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(record, flat), nil
}

// List returns the tower's settlements matching the filter, newest first
func (s *SettlementService) List(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]SettlementResponse, error) {
	records, err := s.repo.FindByTower(ctx, towerID, filter)
	if err != nil {
		return nil, err
	}

	flats, err := s.flatIndex(ctx, towerID)
	if err != nil {
		return nil, err
	}

	responses := make([]SettlementResponse, len(records))
	for i := range records {
		flat := flats[records[i].FlatID]
		responses[i] = *s.toResponse(&records[i], flat)
	}
	return responses, nil
}

// ListByFlat returns a single flat's settlements. Flat owners see only
// their own records.
func (s *SettlementService) ListByFlat(ctx context.Context, flatID uuid.UUID, filter ledger.ListFilter) ([]SettlementResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindByFlat(ctx, flatID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SettlementResponse, len(records))
	for i := range records {
		responses[i] = *s.toResponse(&records[i], flat)
	}
	return responses, nil
}

// Update updates a settlement within its creation month
func (s *SettlementService) Update(ctx context.Context, req UpdateSettlementRequest) (*SettlementResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flat, err := s.flatRepo.FindByID(ctx, record.FlatID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	estimate, err := s.monthEstimate(ctx, flat.TowerID, record.Period)
	if err != nil {
		return nil, err
	}

	if err := record.Update(req.PayedAmount, ledger.PayPercentage(req.PayPercentage), estimate, req.Notes, now); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return s.toResponse(record, flat), nil
}

// Delete removes a settlement
func (s *SettlementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *SettlementService) flatIndex(ctx context.Context, towerID uuid.UUID) (map[uuid.UUID]*property.Flat, error) {
	flats, err := s.flatRepo.FindByTower(ctx, towerID)
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]*property.Flat, len(flats))
	for i := range flats {
		index[flats[i].ID] = &flats[i]
	}
	return index, nil
}

func (s *SettlementService) toResponse(record *ledger.Settlement, flat *property.Flat) *SettlementResponse {
	resp := &SettlementResponse{
		ID:                   record.ID,
		FlatID:               record.FlatID,
		PayedAmount:          record.PayedAmount,
		PayPercentage:        int(record.PayPercentage),
		NetEstimatedExpenses: record.NetEstimatedExpenses,
		Remaining:            record.Remaining(),
		Notes:                record.Notes,
		Period:               record.Period,
		CreatedAt:            record.CreatedAt,
	}
	if flat != nil {
		resp.FlatNumber = flat.Number
		resp.FlatFloor = flat.Floor
	}
	return resp
}
