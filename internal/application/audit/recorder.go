// Package audit records user actions without blocking the request path.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/audit"
	"go.uber.org/zap"
)

const recordTimeout = 5 * time.Second

// Recorder writes audit entries in the background. A failed write is logged
// and dropped so that the audited operation itself never fails.
type Recorder struct {
	repo   audit.UserLogRepository
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewRecorder creates a new Recorder
func NewRecorder(repo audit.UserLogRepository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Record writes a "<page>:<verb>" audit entry asynchronously. userID is nil
// for anonymous events such as failed logins.
func (r *Recorder) Record(userID *uuid.UUID, page, verb string, status bool, details string) {
	entry, err := audit.NewUserLog(userID, page, verb, status, details)
	if err != nil {
		r.logger.Warn("Invalid audit entry dropped",
			zap.String("page", page),
			zap.String("verb", verb),
			zap.Error(err))
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := r.repo.Save(ctx, entry); err != nil {
			r.logger.Error("Failed to write audit entry",
				zap.String("action", entry.Action),
				zap.Error(err))
		}
	}()
}

// List returns audit entries matching the filter
func (r *Recorder) List(ctx context.Context, filter audit.ListFilter) ([]audit.UserLog, error) {
	return r.repo.FindAll(ctx, filter)
}

// Delete removes an audit entry
func (r *Recorder) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, id)
}

// Wait blocks until all pending writes have finished. Tests and shutdown use
// it to avoid losing entries.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
