package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOpeningBalanceRepository implements OpeningBalanceRepository using GORM
type GormOpeningBalanceRepository struct {
	db *gorm.DB
}

// NewGormOpeningBalanceRepository creates a new GormOpeningBalanceRepository
func NewGormOpeningBalanceRepository(db *gorm.DB) *GormOpeningBalanceRepository {
	return &GormOpeningBalanceRepository{db: db}
}

// FindByID finds an opening balance by its ID
func (r *GormOpeningBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.OpeningBalance, error) {
	var model models.OpeningBalanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTower returns the tower's opening balances matching the filter
func (r *GormOpeningBalanceRepository) FindByTower(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]ledger.OpeningBalance, error) {
	var rows []models.OpeningBalanceModel
	query := r.db.WithContext(ctx).Where("tower_id = ?", towerID)
	query = applyLedgerFilter(query, "opening_balances", filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]ledger.OpeningBalance, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// Save creates or updates an opening balance
func (r *GormOpeningBalanceRepository) Save(ctx context.Context, record *ledger.OpeningBalance) error {
	var model models.OpeningBalanceModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an opening balance
func (r *GormOpeningBalanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OpeningBalanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all opening balances
func (r *GormOpeningBalanceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OpeningBalanceModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOpeningBalanceRepository implements OpeningBalanceRepository
var _ ledger.OpeningBalanceRepository = (*GormOpeningBalanceRepository)(nil)
