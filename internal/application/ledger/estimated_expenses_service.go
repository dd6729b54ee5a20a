// Package ledger implements the financial record operations: estimates,
// settlements, opening balances and the dashboard aggregates.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// EstimatedExpensesService handles monthly tower estimates
type EstimatedExpensesService struct {
	repo    ledger.EstimatedExpensesRepository
	storage MediaStorage
	logger  *zap.Logger
	now     func() time.Time
}

// NewEstimatedExpensesService creates a new EstimatedExpensesService
func NewEstimatedExpensesService(
	repo ledger.EstimatedExpensesRepository,
	storage MediaStorage,
	logger *zap.Logger,
) *EstimatedExpensesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimatedExpensesService{
		repo:    repo,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Create creates the estimate for the current month. The storage layer's
// unique index rejects a second estimate for the same tower and month.
func (s *EstimatedExpensesService) Create(ctx context.Context, towerID uuid.UUID, req CreateEstimatedExpensesRequest) (*EstimatedExpensesResponse, error) {
	record, err := ledger.NewEstimatedExpenses(towerID, req.Amounts.ToDomain(), req.Notes, s.now())
	if err != nil {
		return nil, err
	}

	keys, err := uploadAttachments(ctx, s.storage, "estimated-expenses", req.Attachments)
	if err != nil {
		return nil, err
	}
	record.Attachments = keys

	if err := s.repo.Save(ctx, record); err != nil {
		// The record is not persisted, so the uploads are orphans
		deleteAttachments(s.storage, s.logger, keys)
		return nil, err
	}
	return ToEstimatedExpensesResponse(record), nil
}

// GetByID retrieves an estimate
func (s *EstimatedExpensesService) GetByID(ctx context.Context, id uuid.UUID) (*EstimatedExpensesResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEstimatedExpensesResponse(record), nil
}

// List returns the tower's estimates matching the filter, newest first
func (s *EstimatedExpensesService) List(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]EstimatedExpensesResponse, error) {
	records, err := s.repo.FindByTower(ctx, towerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]EstimatedExpensesResponse, len(records))
	for i := range records {
		responses[i] = *ToEstimatedExpensesResponse(&records[i])
	}
	return responses, nil
}

// Update updates an estimate. Replacement attachments delete the stored
// ones best-effort before the new uploads are persisted.
func (s *EstimatedExpensesService) Update(ctx context.Context, req UpdateEstimatedExpensesRequest) (*EstimatedExpensesResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := record.Update(req.Amounts.ToDomain(), req.Notes); err != nil {
		return nil, err
	}

	if req.Attachments != nil {
		deleteAttachments(s.storage, s.logger, record.Attachments)

		keys, err := uploadAttachments(ctx, s.storage, "estimated-expenses", req.Attachments)
		if err != nil {
			return nil, err
		}
		record.SetAttachments(keys)
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToEstimatedExpensesResponse(record), nil
}

// Delete removes an estimate and cleans up its attachments best-effort
func (s *EstimatedExpensesService) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	deleteAttachments(s.storage, s.logger, record.Attachments)
	return nil
}

// AttachmentURL returns a short-lived download URL for a stored attachment
func (s *EstimatedExpensesService) AttachmentURL(ctx context.Context, key string) (string, time.Time, error) {
	return s.storage.DownloadURL(ctx, key)
}
