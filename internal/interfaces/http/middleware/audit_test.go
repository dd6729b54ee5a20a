package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	auditapp "github.com/towerledger/backend/internal/application/audit"
	"github.com/towerledger/backend/internal/domain/audit"
	"github.com/towerledger/backend/internal/domain/shared"
)

type memoryLogRepo struct {
	mu      sync.Mutex
	entries []audit.UserLog
}

func (r *memoryLogRepo) FindByID(_ context.Context, id uuid.UUID) (*audit.UserLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryLogRepo) FindAll(_ context.Context, _ audit.ListFilter) ([]audit.UserLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.UserLog(nil), r.entries...), nil
}

func (r *memoryLogRepo) Save(_ context.Context, entry *audit.UserLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryLogRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memoryLogRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

func auditTestRouter(repo *memoryLogRepo, userID uuid.UUID, handlerStatus int) (*gin.Engine, *auditapp.Recorder) {
	recorder := auditapp.NewRecorder(repo, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(JWTUserIDKey, userID.String())
		}
		c.Next()
	})
	router.Use(AuditMutations(recorder))

	handle := func(c *gin.Context) {
		c.JSON(handlerStatus, gin.H{})
	}
	router.POST("/api/v1/settlement", handle)
	router.GET("/api/v1/settlement", handle)
	router.POST("/api/v1/auth/login", handle)
	router.DELETE("/api/v1/towers", handle)

	return router, recorder
}

func TestAuditMutationsRecordsMutation(t *testing.T) {
	repo := &memoryLogRepo{}
	userID := uuid.New()
	router, recorder := auditTestRouter(repo, userID, http.StatusCreated)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlement", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	recorder.Wait()

	entries, err := repo.FindAll(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settlement:POST", entries[0].Action)
	assert.True(t, entries[0].Status)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, userID, *entries[0].UserID)
}

func TestAuditMutationsMarksFailures(t *testing.T) {
	repo := &memoryLogRepo{}
	router, recorder := auditTestRouter(repo, uuid.New(), http.StatusUnprocessableEntity)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/towers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	recorder.Wait()

	entries, err := repo.FindAll(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "towers:DELETE", entries[0].Action)
	assert.False(t, entries[0].Status)
}

func TestAuditMutationsSkipsReads(t *testing.T) {
	repo := &memoryLogRepo{}
	router, recorder := auditTestRouter(repo, uuid.New(), http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settlement", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	recorder.Wait()

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuditMutationsSkipsAuthPaths(t *testing.T) {
	repo := &memoryLogRepo{}
	router, recorder := auditTestRouter(repo, uuid.Nil, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	recorder.Wait()

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPageOf(t *testing.T) {
	assert.Equal(t, "settlement", pageOf("/api/v1/settlement/export"))
	assert.Equal(t, "towers", pageOf("/api/v1/towers"))
	assert.Equal(t, "unknown", pageOf("/api/v1/"))
}
