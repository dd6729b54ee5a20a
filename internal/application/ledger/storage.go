package ledger

import (
	"context"
	"time"
)

// MediaStorage is the port to the external media store holding record
// attachments. Only stable storage keys are persisted with the records.
type MediaStorage interface {
	// Upload stores an attachment under the given key.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes an attachment. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// DownloadURL returns a short-lived URL for fetching an attachment.
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}
