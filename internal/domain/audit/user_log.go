// Package audit records who did what. Entries are append-only: they are
// written on every page action and can be listed or pruned, never edited.
package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/shared"
)

// UserLog is one audit entry. UserID is nil for anonymous events such as
// failed logins.
type UserLog struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Action    string     `json:"action"`
	Status    bool       `json:"status"`
	Details   string     `json:"details"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewUserLog creates an audit entry. Action follows the "<page>:<verb>"
// convention, e.g. "estimated-expenses:POST".
func NewUserLog(userID *uuid.UUID, page, verb string, status bool, details string) (*UserLog, error) {
	if page == "" || verb == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Page and verb cannot be empty")
	}

	return &UserLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    fmt.Sprintf("%s:%s", page, verb),
		Status:    status,
		Details:   details,
		CreatedAt: time.Now(),
	}, nil
}
