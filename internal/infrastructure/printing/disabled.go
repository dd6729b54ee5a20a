package printing

import (
	"context"

	"github.com/towerledger/backend/internal/domain/shared"
)

// DisabledRenderer stands in for the chromedp renderer when printing is
// turned off in configuration. Every render request is rejected.
type DisabledRenderer struct{}

// Render always fails
func (DisabledRenderer) Render(_ context.Context, _, _ string) ([]byte, error) {
	return nil, shared.NewDomainError("VALIDATION_ERROR", "PDF printing is not enabled")
}

var _ PDFRenderer = DisabledRenderer{}
