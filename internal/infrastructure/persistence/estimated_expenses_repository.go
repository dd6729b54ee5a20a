package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEstimatedExpensesRepository implements EstimatedExpensesRepository using GORM
type GormEstimatedExpensesRepository struct {
	db *gorm.DB
}

// NewGormEstimatedExpensesRepository creates a new GormEstimatedExpensesRepository
func NewGormEstimatedExpensesRepository(db *gorm.DB) *GormEstimatedExpensesRepository {
	return &GormEstimatedExpensesRepository{db: db}
}

// FindByID finds an estimate by its ID
func (r *GormEstimatedExpensesRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.EstimatedExpenses, error) {
	var model models.EstimatedExpensesModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTower returns the tower's estimates matching the filter
func (r *GormEstimatedExpensesRepository) FindByTower(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]ledger.EstimatedExpenses, error) {
	var rows []models.EstimatedExpensesModel
	query := r.db.WithContext(ctx).Where("tower_id = ?", towerID)
	query = applyLedgerFilter(query, "estimated_expenses", filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]ledger.EstimatedExpenses, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// FindByTowerAndMonth returns the single estimate for the month
func (r *GormEstimatedExpensesRepository) FindByTowerAndMonth(ctx context.Context, towerID uuid.UUID, month time.Time) (*ledger.EstimatedExpenses, error) {
	var model models.EstimatedExpensesModel
	err := r.db.WithContext(ctx).
		Where("tower_id = ? AND period = ?", towerID, ledger.MonthOf(month)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an estimate. A second estimate for the same tower
// and month violates the unique index and comes back as ErrValidation.
func (r *GormEstimatedExpensesRepository) Save(ctx context.Context, record *ledger.EstimatedExpenses) error {
	var model models.EstimatedExpensesModel
	model.FromDomain(record)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrValidation
		}
		return err
	}
	return nil
}

// Delete deletes an estimate
func (r *GormEstimatedExpensesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EstimatedExpensesModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all estimates
func (r *GormEstimatedExpensesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.EstimatedExpensesModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEstimatedExpensesRepository implements EstimatedExpensesRepository
var _ ledger.EstimatedExpensesRepository = (*GormEstimatedExpensesRepository)(nil)
