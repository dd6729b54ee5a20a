package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// In-memory repositories for exercising the services without a database.

type memoryEstimatesRepo struct {
	records map[uuid.UUID]*ledger.EstimatedExpenses
	saveErr error
}

func newMemoryEstimatesRepo() *memoryEstimatesRepo {
	return &memoryEstimatesRepo{records: make(map[uuid.UUID]*ledger.EstimatedExpenses)}
}

func (r *memoryEstimatesRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.EstimatedExpenses, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memoryEstimatesRepo) FindByTower(_ context.Context, towerID uuid.UUID, _ ledger.ListFilter) ([]ledger.EstimatedExpenses, error) {
	var out []ledger.EstimatedExpenses
	for _, record := range r.records {
		if record.TowerID == towerID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *memoryEstimatesRepo) FindByTowerAndMonth(_ context.Context, towerID uuid.UUID, month time.Time) (*ledger.EstimatedExpenses, error) {
	for _, record := range r.records {
		if record.TowerID == towerID && ledger.SameMonth(record.Period, month) {
			clone := *record
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryEstimatesRepo) Save(_ context.Context, record *ledger.EstimatedExpenses) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memoryEstimatesRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memoryEstimatesRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

type memorySettlementRepo struct {
	records map[uuid.UUID]*ledger.Settlement
	flats   map[uuid.UUID]uuid.UUID // flat id -> tower id
}

func newMemorySettlementRepo() *memorySettlementRepo {
	return &memorySettlementRepo{
		records: make(map[uuid.UUID]*ledger.Settlement),
		flats:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *memorySettlementRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Settlement, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memorySettlementRepo) FindByTower(_ context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]ledger.Settlement, error) {
	var out []ledger.Settlement
	for _, record := range r.records {
		if r.flats[record.FlatID] != towerID {
			continue
		}
		if filter.Month != nil && !ledger.SameMonth(record.CreatedAt, *filter.Month) {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (r *memorySettlementRepo) FindByFlat(_ context.Context, flatID uuid.UUID, filter ledger.ListFilter) ([]ledger.Settlement, error) {
	var out []ledger.Settlement
	for _, record := range r.records {
		if record.FlatID != flatID {
			continue
		}
		if filter.Month != nil && !ledger.SameMonth(record.CreatedAt, *filter.Month) {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (r *memorySettlementRepo) Save(_ context.Context, record *ledger.Settlement) error {
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memorySettlementRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memorySettlementRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

type memoryFlatRepo struct {
	flats map[uuid.UUID]*property.Flat
}

func newMemoryFlatRepo() *memoryFlatRepo {
	return &memoryFlatRepo{flats: make(map[uuid.UUID]*property.Flat)}
}

func (r *memoryFlatRepo) add(flat *property.Flat) {
	clone := *flat
	r.flats[flat.ID] = &clone
}

func (r *memoryFlatRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Flat, error) {
	flat, ok := r.flats[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *flat
	return &clone, nil
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
			clone := *flat
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryFlatRepo) Save(_ context.Context, flat *property.Flat) error {
	r.add(flat)
	return nil
}

func (r *memoryFlatRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.flats, id)
	return nil
}

func (r *memoryFlatRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.flats)), nil
}

func newTestFlat(t *testing.T, towerID uuid.UUID, number, floor int) *property.Flat {
	t.Helper()
	flat, err := property.NewFlat(towerID, number, floor)
	require.NoError(t, err)
	return flat
}

func amounts(electricity, water int64) AmountsPayload {
	return AmountsPayload{
		Electricity: decimal.NewFromInt(electricity),
		Water:       decimal.NewFromInt(water),
	}
}

type failingStorage struct {
	uploads int
	deletes []string
}

func (s *failingStorage) Upload(_ context.Context, _ string, _ []byte, _ string) error {
	s.uploads++
	return nil
}

func (s *failingStorage) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	return nil
}

func (s *failingStorage) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	return "https://example.com/" + key, time.Now().Add(time.Minute), nil
}

func TestEstimatedExpensesServiceCreate(t *testing.T) {
	repo := newMemoryEstimatesRepo()
	store := &failingStorage{}
	svc := NewEstimatedExpensesService(repo, store, zap.NewNop())

	towerID := uuid.New()
	resp, err := svc.Create(context.Background(), towerID, CreateEstimatedExpensesRequest{
		Amounts: amounts(300, 200),
		Notes:   "january",
		Attachments: []AttachmentUpload{
			{FileName: "invoice.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, towerID, resp.TowerID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(500)))
	assert.Len(t, resp.Attachments, 1)
	assert.Equal(t, 1, store.uploads)
}

func TestEstimatedExpensesServiceCreateCleansUpOnSaveFailure(t *testing.T) {
	repo := newMemoryEstimatesRepo()
	repo.saveErr = errors.New("connection reset")
	store := &failingStorage{}
	svc := NewEstimatedExpensesService(repo, store, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), CreateEstimatedExpensesRequest{
		Amounts: amounts(100, 0),
		Attachments: []AttachmentUpload{
			{FileName: "a.png", Data: []byte("img")},
		},
	})
	require.Error(t, err)

	// The orphaned upload must be removed again
	assert.Len(t, store.deletes, 1)
}

func TestEstimatedExpensesServiceDeleteRemovesAttachments(t *testing.T) {
	repo := newMemoryEstimatesRepo()
	store := &failingStorage{}
	svc := NewEstimatedExpensesService(repo, store, zap.NewNop())

	resp, err := svc.Create(context.Background(), uuid.New(), CreateEstimatedExpensesRequest{
		Amounts: amounts(50, 50),
		Attachments: []AttachmentUpload{
			{FileName: "receipt.jpg", Data: []byte("jpg")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))
	assert.Equal(t, resp.Attachments, store.deletes)

	_, err = svc.GetByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSettlementServiceCreateDerivesNetFromEstimate(t *testing.T) {
	estimates := newMemoryEstimatesRepo()
	settlements := newMemorySettlementRepo()
	flats := newMemoryFlatRepo()

	towerID := uuid.New()
	flat := newTestFlat(t, towerID, 12, 3)
	flats.add(flat)
	settlements.flats[flat.ID] = towerID

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	estimate, err := ledger.NewEstimatedExpenses(towerID, amounts(600, 400).ToDomain(), "", now)
	require.NoError(t, err)
	require.NoError(t, estimates.Save(context.Background(), estimate))

	svc := NewSettlementService(settlements, estimates, flats)
	svc.now = func() time.Time { return now }

	resp, err := svc.Create(context.Background(), CreateSettlementRequest{
		FlatID:        flat.ID.String(),
		PayedAmount:   decimal.NewFromInt(200),
		PayPercentage: 50,
	})
	require.NoError(t, err)

	assert.True(t, resp.NetEstimatedExpenses.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 12, resp.FlatNumber)
	assert.Equal(t, 3, resp.FlatFloor)
}

func TestSettlementServiceCreateWithoutEstimate(t *testing.T) {
	settlements := newMemorySettlementRepo()
	flats := newMemoryFlatRepo()

	towerID := uuid.New()
	flat := newTestFlat(t, towerID, 1, 1)
	flats.add(flat)

	svc := NewSettlementService(settlements, newMemoryEstimatesRepo(), flats)

	// No estimate for the month: the net share is zero
	resp, err := svc.Create(context.Background(), CreateSettlementRequest{
		FlatID:        flat.ID.String(),
		PayedAmount:   decimal.NewFromInt(100),
		PayPercentage: 100,
	})
	require.NoError(t, err)
	assert.True(t, resp.NetEstimatedExpenses.IsZero())
}

func TestSettlementServiceUpdateLockedAfterMonth(t *testing.T) {
	estimates := newMemoryEstimatesRepo()
	settlements := newMemorySettlementRepo()
	flats := newMemoryFlatRepo()

	towerID := uuid.New()
	flat := newTestFlat(t, towerID, 5, 2)
	flats.add(flat)

	created := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	svc := NewSettlementService(settlements, estimates, flats)
	svc.now = func() time.Time { return created }

	resp, err := svc.Create(context.Background(), CreateSettlementRequest{
		FlatID:        flat.ID.String(),
		PayedAmount:   decimal.NewFromInt(50),
		PayPercentage: 100,
	})
	require.NoError(t, err)

	record, err := settlements.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	record.CreatedAt = created
	require.NoError(t, settlements.Save(context.Background(), record))

	svc.now = func() time.Time { return created.AddDate(0, 1, 0) }

	_, err = svc.Update(context.Background(), UpdateSettlementRequest{
		ID:            resp.ID.String(),
		PayedAmount:   decimal.NewFromInt(60),
		PayPercentage: 100,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SETTLEMENT_LOCKED", domainErr.Code)
}

func TestMonthlySettlementServiceCreateNetIsCategoryTotal(t *testing.T) {
	flats := newMemoryFlatRepo()
	towerID := uuid.New()
	flat := newTestFlat(t, towerID, 7, 4)
	flats.add(flat)

	repo := &memoryMonthlyRepo{records: make(map[uuid.UUID]*ledger.MonthlySettlement)}
	svc := NewMonthlySettlementService(repo, flats)

	resp, err := svc.Create(context.Background(), CreateMonthlySettlementRequest{
		FlatID:      flat.ID.String(),
		Amounts:     amounts(120, 80),
		PayedAmount: decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.True(t, resp.NetEstimatedExpenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 7, resp.FlatNumber)
}

type memoryMonthlyRepo struct {
	records map[uuid.UUID]*ledger.MonthlySettlement
}

func (r *memoryMonthlyRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.MonthlySettlement, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memoryMonthlyRepo) FindByTower(_ context.Context, _ uuid.UUID, _ ledger.ListFilter) ([]ledger.MonthlySettlement, error) {
	var out []ledger.MonthlySettlement
	for _, record := range r.records {
		out = append(out, *record)
	}
	return out, nil
}

func (r *memoryMonthlyRepo) FindByFlat(_ context.Context, flatID uuid.UUID, _ ledger.ListFilter) ([]ledger.MonthlySettlement, error) {
	var out []ledger.MonthlySettlement
	for _, record := range r.records {
		if record.FlatID == flatID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *memoryMonthlyRepo) Save(_ context.Context, record *ledger.MonthlySettlement) error {
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memoryMonthlyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *memoryMonthlyRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

type memoryOpeningRepo struct {
	records map[uuid.UUID]*ledger.OpeningBalance
}

func (r *memoryOpeningRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.OpeningBalance, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memoryOpeningRepo) FindByTower(_ context.Context, towerID uuid.UUID, _ ledger.ListFilter) ([]ledger.OpeningBalance, error) {
	var out []ledger.OpeningBalance
	for _, record := range r.records {
		if record.TowerID == towerID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *memoryOpeningRepo) Save(_ context.Context, record *ledger.OpeningBalance) error {
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *memoryOpeningRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *memoryOpeningRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func TestOpeningBalanceServiceCreateAndUpdate(t *testing.T) {
	repo := &memoryOpeningRepo{records: make(map[uuid.UUID]*ledger.OpeningBalance)}
	svc := NewOpeningBalanceService(repo)

	towerID := uuid.New()
	resp, err := svc.Create(context.Background(), towerID, CreateOpeningBalanceRequest{
		Balance: decimal.NewFromInt(1500),
		Notes:   "carried forward",
	})
	require.NoError(t, err)
	assert.Equal(t, towerID, resp.TowerID)

	updated, err := svc.Update(context.Background(), UpdateOpeningBalanceRequest{
		ID:      resp.ID.String(),
		Balance: decimal.NewFromInt(-250),
		Notes:   "deficit",
	})
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(-250)))
	assert.Equal(t, "deficit", updated.Notes)
}
