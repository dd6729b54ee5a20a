package ledger

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const deleteTimeout = 10 * time.Second

// uploadAttachments stores the payloads and returns their storage keys.
// A failed upload aborts the whole batch.
func uploadAttachments(ctx context.Context, storage MediaStorage, prefix string, uploads []AttachmentUpload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		key := fmt.Sprintf("%s/%s%s", prefix, uuid.New(), safeExt(upload.FileName))
		if err := storage.Upload(ctx, key, upload.Data, upload.ContentType); err != nil {
			return nil, fmt.Errorf("failed to upload attachment %q: %w", upload.FileName, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// deleteAttachments removes stored keys concurrently. Deletion is best
// effort: individual failures are logged and do not stop the caller.
func deleteAttachments(storage MediaStorage, logger *zap.Logger, keys []string) {
	if len(keys) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
			defer cancel()

			if err := storage.Delete(ctx, key); err != nil {
				logger.Warn("Failed to delete attachment",
					zap.String("key", key),
					zap.Error(err))
			}
		}(key)
	}
	wg.Wait()
}

// safeExt extracts a filename extension safe to embed in a storage key
func safeExt(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
