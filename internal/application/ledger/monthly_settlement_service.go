package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
)

// MonthlySettlementService handles itemised monthly reconciliations
type MonthlySettlementService struct {
	repo     ledger.MonthlySettlementRepository
	flatRepo property.FlatRepository
	now      func() time.Time
}

// NewMonthlySettlementService creates a new MonthlySettlementService
func NewMonthlySettlementService(
	repo ledger.MonthlySettlementRepository,
	flatRepo property.FlatRepository,
) *MonthlySettlementService {
	return &MonthlySettlementService{
		repo:     repo,
		flatRepo: flatRepo,
		now:      time.Now,
	}
}

// Create creates a monthly settlement for the current month. The storage
// layer's unique index rejects a second row for the same flat and month.
func (s *MonthlySettlementService) Create(ctx context.Context, req CreateMonthlySettlementRequest) (*MonthlySettlementResponse, error) {
	flatID, err := uuid.Parse(req.FlatID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Invalid flat ID")
	}

	flat, err := s.flatRepo.FindByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	record, err := ledger.NewMonthlySettlement(flatID, req.Amounts.ToDomain(), req.PayedAmount, req.Notes, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return s.toResponse(record, flat), nil
}

// GetByID retrieves a monthly settlement
func (s *MonthlySettlementService) GetByID(ctx context.Context, id uuid.UUID) (*MonthlySettlementResponse, error) {
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

// List returns the tower's monthly settlements matching the filter
func (s *MonthlySettlementService) List(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]MonthlySettlementResponse, error) {
	records, err := s.repo.FindByTower(ctx, towerID, filter)
	if err != nil {
		return nil, err
	}

	flats, err := s.flatRepo.FindByTower(ctx, towerID)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]*property.Flat, len(flats))
	for i := range flats {
		index[flats[i].ID] = &flats[i]
	}

	responses := make([]MonthlySettlementResponse, len(records))
	for i := range records {
		responses[i] = *s.toResponse(&records[i], index[records[i].FlatID])
	}
	return responses, nil
}

// ListByFlat returns a single flat's monthly settlements
func (s *MonthlySettlementService) ListByFlat(ctx context.Context, flatID uuid.UUID, filter ledger.ListFilter) ([]MonthlySettlementResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindByFlat(ctx, flatID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MonthlySettlementResponse, len(records))
	for i := range records {
		responses[i] = *s.toResponse(&records[i], flat)
	}
	return responses, nil
}

// Update updates a monthly settlement within its creation month
func (s *MonthlySettlementService) Update(ctx context.Context, req UpdateMonthlySettlementRequest) (*MonthlySettlementResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := record.Update(req.Amounts.ToDomain(), req.PayedAmount, req.Notes, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	flat, err := s.flatRepo.FindByID(ctx, record.FlatID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(record, flat), nil
}

// Delete removes a monthly settlement
func (s *MonthlySettlementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *MonthlySettlementService) toResponse(record *ledger.MonthlySettlement, flat *property.Flat) *MonthlySettlementResponse {
	resp := &MonthlySettlementResponse{
		ID:                   record.ID,
		FlatID:               record.FlatID,
		Amounts:              amountsPayload(record.CategoryAmounts),
		PayedAmount:          record.PayedAmount,
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
