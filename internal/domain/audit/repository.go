package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows audit listings.
type ListFilter struct {
	// Month restricts results to the calendar month containing it.
	Month *time.Time
	// Search is a case-insensitive substring match on the action field.
	Search string
}

// UserLogRepository defines persistence for audit entries.
type UserLogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserLog, error)
	FindAll(ctx context.Context, filter ListFilter) ([]UserLog, error)
	Save(ctx context.Context, entry *UserLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
