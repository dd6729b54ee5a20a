package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towerledger/backend/internal/domain/audit"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TowerModel{},
		&models.FlatModel{},
		&models.EstimatedExpensesModel{},
		&models.SettlementModel{},
		&models.MonthlySettlementModel{},
		&models.OpeningBalanceModel{},
		&models.UserModel{},
		&models.UserLogModel{},
	)
	require.NoError(t, err)

	return db
}

func createTower(t *testing.T, db *gorm.DB, name string) *property.Tower {
	tower, err := property.NewTower(name, "1 Main St", 10)
	require.NoError(t, err)
	require.NoError(t, NewGormTowerRepository(db).Save(context.Background(), tower))
	return tower
}

func createFlat(t *testing.T, db *gorm.DB, towerID uuid.UUID, number, floor int) *property.Flat {
	flat, err := property.NewFlat(towerID, number, floor)
	require.NoError(t, err)
	require.NoError(t, NewGormFlatRepository(db).Save(context.Background(), flat))
	return flat
}

func TestGormTowerRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTowerRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")

	found, err := repo.FindByID(ctx, tower.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Tower", found.Name)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	createTower(t, db, "East Tower")
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "East Tower", all[0].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repo.Delete(ctx, tower.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tower.ID), shared.ErrNotFound)
}

func TestGormTowerRepositoryFindByUserEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTowerRepository(db)
	userRepo := NewGormUserRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")
	createTower(t, db, "East Tower")

	user, err := identity.NewUser("Amina", "amina@example.com", identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("secret123"))
	user.SwitchTower(tower.ID)
	require.NoError(t, userRepo.Save(ctx, user))

	towers, err := repo.FindByUserEmail(ctx, "Amina@Example.com")
	require.NoError(t, err)
	require.Len(t, towers, 1)
	assert.Equal(t, "North Tower", towers[0].Name)

	towers, err = repo.FindByUserEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, towers)
}

func TestGormFlatRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFlatRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")
	flat := createFlat(t, db, tower.ID, 12, 3)
	createFlat(t, db, tower.ID, 2, 1)

	found, err := repo.FindByNumberAndFloor(ctx, 12, 3)
	require.NoError(t, err)
	assert.Equal(t, flat.ID, found.ID)

	_, err = repo.FindByNumberAndFloor(ctx, 99, 9)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	flats, err := repo.FindByTower(ctx, tower.ID)
	require.NoError(t, err)
	require.Len(t, flats, 2)
	assert.Equal(t, 1, flats[0].Floor)
}

func TestGormEstimatedExpensesRepositoryPeriodUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEstimatedExpensesRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	first, err := ledger.NewEstimatedExpenses(tower.ID, ledger.CategoryAmounts{
		Electricity: decimal.NewFromInt(100),
	}, "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := ledger.NewEstimatedExpenses(tower.ID, ledger.CategoryAmounts{}, "", now.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrValidation)

	// Another month is fine
	third, err := ledger.NewEstimatedExpenses(tower.ID, ledger.CategoryAmounts{}, "", now.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.NoError(t, repo.Save(ctx, third))

	found, err := repo.FindByTowerAndMonth(ctx, tower.ID, now)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindByTowerAndMonth(ctx, tower.ID, now.AddDate(0, 2, 0))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEstimatedExpensesRepositoryListFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEstimatedExpensesRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")
	other := createTower(t, db, "East Tower")

	may := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, in := range []struct {
		towerID uuid.UUID
		notes   string
		at      time.Time
	}{
		{tower.ID, "May Cleaning", may},
		{tower.ID, "june guard", june},
		{other.ID, "other tower", may},
	} {
		record, err := ledger.NewEstimatedExpenses(in.towerID, ledger.CategoryAmounts{}, in.notes, in.at)
		require.NoError(t, err)
		record.CreatedAt = in.at
		require.NoError(t, repo.Save(ctx, record))
	}

	all, err := repo.FindByTower(ctx, tower.ID, ledger.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first
	assert.Equal(t, "june guard", all[0].Notes)

	byMonth, err := repo.FindByTower(ctx, tower.ID, ledger.ListFilter{Month: &may})
	require.NoError(t, err)
	require.Len(t, byMonth, 1)
	assert.Equal(t, "May Cleaning", byMonth[0].Notes)

	bySearch, err := repo.FindByTower(ctx, tower.ID, ledger.ListFilter{Search: "cleaning"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "May Cleaning", bySearch[0].Notes)
}

func TestGormSettlementRepositoryTowerScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSettlementRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")
	other := createTower(t, db, "East Tower")
	flat := createFlat(t, db, tower.ID, 1, 1)
	otherFlat := createFlat(t, db, other.ID, 2, 1)

	estimate := decimal.NewFromInt(1000)
	mine, err := ledger.NewSettlement(flat.ID, decimal.NewFromInt(500), ledger.PayFull, estimate, "mine", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mine))

	theirs, err := ledger.NewSettlement(otherFlat.ID, decimal.Zero, ledger.PayHalf, estimate, "theirs", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, theirs))

	records, err := repo.FindByTower(ctx, tower.ID, ledger.ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "mine", records[0].Notes)
	assert.True(t, records[0].NetEstimatedExpenses.Equal(estimate))

	byFlat, err := repo.FindByFlat(ctx, otherFlat.ID, ledger.ListFilter{})
	require.NoError(t, err)
	require.Len(t, byFlat, 1)
	assert.Equal(t, "theirs", byFlat[0].Notes)
}

func TestGormMonthlySettlementRepositoryUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMonthlySettlementRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")
	flat := createFlat(t, db, tower.ID, 1, 1)
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	first, err := ledger.NewMonthlySettlement(flat.ID, ledger.CategoryAmounts{Water: decimal.NewFromInt(20)}, decimal.Zero, "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	dup, err := ledger.NewMonthlySettlement(flat.ID, ledger.CategoryAmounts{}, decimal.Zero, "", now.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrValidation)

	records, err := repo.FindByTower(ctx, tower.ID, ledger.ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].NetEstimatedExpenses.Equal(decimal.NewFromInt(20)))
}

func TestGormOpeningBalanceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOpeningBalanceRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")

	record, err := ledger.NewOpeningBalance(tower.ID, decimal.NewFromFloat(-50.25), "carried", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, found.Balance.Equal(decimal.NewFromFloat(-50.25)))

	records, err := repo.FindByTower(ctx, tower.ID, ledger.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, repo.Delete(ctx, record.ID))
	_, err = repo.FindByID(ctx, record.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	tower := createTower(t, db, "North Tower")

	user, err := identity.NewUser("Amina", "amina@example.com", identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("secret123"))
	user.SwitchTower(tower.ID)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByEmailAndTower(ctx, " Amina@Example.com ", tower.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.VerifyPassword("secret123"))

	_, err = repo.FindByEmailAndTower(ctx, "amina@example.com", uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	dup, err := identity.NewUser("Other", "amina@example.com", identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, dup.SetPassword("secret123"))
	assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
}

func TestGormUserLogRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserLogRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	entry, err := audit.NewUserLog(&userID, "towers", "POST", true, "created tower")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, entry))

	anon, err := audit.NewUserLog(nil, "login", "POST", false, "bad password")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, anon))

	entries, err := repo.FindAll(ctx, audit.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	byAction, err := repo.FindAll(ctx, audit.ListFilter{Search: "login"})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	assert.Equal(t, "login:POST", byAction[0].Action)
	assert.Nil(t, byAction[0].UserID)

	require.NoError(t, repo.Delete(ctx, entry.ID))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
