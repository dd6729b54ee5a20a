package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towerledger/backend/internal/domain/audit"
	"go.uber.org/zap"
)

type memoryUserLogRepo struct {
	mu      sync.Mutex
	entries []audit.UserLog
	saveErr error
}

func (r *memoryUserLogRepo) FindByID(ctx context.Context, id uuid.UUID) (*audit.UserLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memoryUserLogRepo) FindAll(ctx context.Context, filter audit.ListFilter) ([]audit.UserLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.UserLog(nil), r.entries...), nil
}

func (r *memoryUserLogRepo) Save(ctx context.Context, entry *audit.UserLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryUserLogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memoryUserLogRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

func TestRecorderRecord(t *testing.T) {
	repo := &memoryUserLogRepo{}
	recorder := NewRecorder(repo, zap.NewNop())

	userID := uuid.New()
	recorder.Record(&userID, "towers", "POST", true, "created tower")
	recorder.Wait()

	entries, err := recorder.List(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "towers:POST", entries[0].Action)
	assert.True(t, entries[0].Status)
}

func TestRecorderDropsInvalidEntry(t *testing.T) {
	repo := &memoryUserLogRepo{}
	recorder := NewRecorder(repo, zap.NewNop())

	recorder.Record(nil, "", "POST", true, "")
	recorder.Wait()

	entries, err := recorder.List(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecorderSurvivesSaveFailure(t *testing.T) {
	repo := &memoryUserLogRepo{saveErr: errors.New("db down")}
	recorder := NewRecorder(repo, zap.NewNop())

	recorder.Record(nil, "login", "POST", false, "bad password")
	recorder.Wait()

	entries, err := recorder.List(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
