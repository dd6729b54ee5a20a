package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	auditapp "github.com/towerledger/backend/internal/application/audit"
	identityapp "github.com/towerledger/backend/internal/application/identity"
	"github.com/towerledger/backend/internal/domain/audit"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/auth"
	"github.com/towerledger/backend/internal/infrastructure/config"
)

type memoryUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByEmailAndTower(_ context.Context, email string, towerID uuid.UUID) (*identity.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.TowerID != nil && *user.TowerID == towerID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) FindAll(_ context.Context) ([]identity.User, error) {
	out := make([]identity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memoryUserRepo) Save(_ context.Context, user *identity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memoryFlatRepo struct {
	flats map[uuid.UUID]*property.Flat
}

func newMemoryFlatRepo() *memoryFlatRepo {
	return &memoryFlatRepo{flats: make(map[uuid.UUID]*property.Flat)}
}

func (r *memoryFlatRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Flat, error) {
	flat, ok := r.flats[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *flat
	return &copied, nil
}

func (r *memoryFlatRepo) FindByTower(_ context.Context, towerID uuid.UUID) ([]property.Flat, error) {
	var out []property.Flat
	for _, flat := range r.flats {
		if flat.TowerID == towerID {
			out = append(out, *flat)
		}
	}
	return out, nil
}

func (r *memoryFlatRepo) FindByNumberAndFloor(_ context.Context, number, floor int) (*property.Flat, error) {
	for _, flat := range r.flats {
		if flat.Number == number && flat.Floor == floor {
			copied := *flat
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryFlatRepo) Save(_ context.Context, flat *property.Flat) error {
	copied := *flat
	r.flats[flat.ID] = &copied
	return nil
}

func (r *memoryFlatRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.flats[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.flats, id)
	return nil
}

func (r *memoryFlatRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.flats)), nil
}

type memoryAuditRepo struct {
	entries []audit.UserLog
}

func (r *memoryAuditRepo) FindByID(_ context.Context, id uuid.UUID) (*audit.UserLog, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAuditRepo) FindAll(_ context.Context, _ audit.ListFilter) ([]audit.UserLog, error) {
	return append([]audit.UserLog(nil), r.entries...), nil
}

func (r *memoryAuditRepo) Save(_ context.Context, entry *audit.UserLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryAuditRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memoryAuditRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

type authTestEnv struct {
	engine   *gin.Engine
	users    *memoryUserRepo
	flats    *memoryFlatRepo
	logs     *memoryAuditRepo
	recorder *auditapp.Recorder
	towerID  uuid.UUID
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	users := newMemoryUserRepo()
	flats := newMemoryFlatRepo()
	towers := newMemoryTowerRepo()
	logs := &memoryAuditRepo{}
	recorder := auditapp.NewRecorder(logs, nil)

	tower, err := property.NewTower("North Tower", "", 12)
	require.NoError(t, err)
	require.NoError(t, towers.Save(context.Background(), tower))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		TokenExpiration: time.Hour,
		Issuer:          "test",
	})
	authService := identityapp.NewAuthService(users, flats, towers, jwtService)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewAuthHandler(authService, recorder).RegisterRoutes(api)

	return &authTestEnv{
		engine:   engine,
		users:    users,
		flats:    flats,
		logs:     logs,
		recorder: recorder,
		towerID:  tower.ID,
	}
}

func (env *authTestEnv) addStaff(t *testing.T, email, password string) *identity.User {
	t.Helper()

	user, err := identity.NewUser("Test Staff", email, identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, user.SetPassword(password))
	user.SwitchTower(env.towerID)
	require.NoError(t, env.users.Save(context.Background(), user))
	return user
}

func (env *authTestEnv) addFlat(t *testing.T, number, floor int, password string) *property.Flat {
	t.Helper()

	flat, err := property.NewFlat(env.towerID, number, floor)
	require.NoError(t, err)
	require.NoError(t, flat.SetPassword(password))
	require.NoError(t, env.flats.Save(context.Background(), flat))
	return flat
}

func TestAuthHandlerStaffLogin(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addStaff(t, "staff@example.com", "secret123")

	rec := doJSON(t, env.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "staff@example.com",
		"tower_id": env.towerID.String(),
		"password": "secret123",
	})
	env.recorder.Wait()

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    identityapp.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	assert.Equal(t, "staff", resp.Data.Role)
	require.NotNil(t, resp.Data.UserID)

	entries, err := env.logs.FindAll(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "auth:LOGIN", entries[0].Action)
	assert.True(t, entries[0].Status)
	require.NotNil(t, entries[0].UserID)
}

func TestAuthHandlerStaffLoginWrongPassword(t *testing.T) {
	env := newAuthTestEnv(t)
	env.addStaff(t, "staff@example.com", "secret123")

	rec := doJSON(t, env.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "staff@example.com",
		"tower_id": env.towerID.String(),
		"password": "wrong",
	})
	env.recorder.Wait()

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	entries, err := env.logs.FindAll(context.Background(), audit.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Status)
	assert.Nil(t, entries[0].UserID)
}

func TestAuthHandlerFlatLogin(t *testing.T) {
	env := newAuthTestEnv(t)
	flat := env.addFlat(t, 12, 3, "doorcode")

	rec := doJSON(t, env.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"as_flat":  true,
		"number":   12,
		"floor":    3,
		"password": "doorcode",
	})
	env.recorder.Wait()

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    identityapp.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "flat", resp.Data.Role)
	require.NotNil(t, resp.Data.FlatID)
	assert.Equal(t, flat.ID, *resp.Data.FlatID)
	assert.Nil(t, resp.Data.UserID)
}

func TestAuthHandlerFlatLoginUnknownUnit(t *testing.T) {
	env := newAuthTestEnv(t)

	rec := doJSON(t, env.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"as_flat":  true,
		"number":   99,
		"floor":    9,
		"password": "whatever",
	})
	env.recorder.Wait()

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLoginRequiresPassword(t *testing.T) {
	env := newAuthTestEnv(t)

	rec := doJSON(t, env.engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email": "staff@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerTowersRequiresEmail(t *testing.T) {
	env := newAuthTestEnv(t)

	rec := doJSON(t, env.engine, http.MethodGet, "/api/v1/auth/towers", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
