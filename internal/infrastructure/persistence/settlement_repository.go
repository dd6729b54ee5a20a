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

// GormSettlementRepository implements SettlementRepository using GORM
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository creates a new GormSettlementRepository
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// FindByID finds a settlement by its ID
func (r *GormSettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Settlement, error) {
	var model models.SettlementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTower returns settlements for every flat of a tower
func (r *GormSettlementRepository) FindByTower(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]ledger.Settlement, error) {
	var rows []models.SettlementModel
	query := r.db.WithContext(ctx).
		Joins("JOIN flats ON flats.id = settlements.flat_id").
		Where("flats.tower_id = ?", towerID)
	query = applyLedgerFilter(query, "settlements", filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSettlements(rows), nil
}

// FindByFlat returns a single flat's settlements
func (r *GormSettlementRepository) FindByFlat(ctx context.Context, flatID uuid.UUID, filter ledger.ListFilter) ([]ledger.Settlement, error) {
	var rows []models.SettlementModel
	query := r.db.WithContext(ctx).Where("flat_id = ?", flatID)
	query = applyLedgerFilter(query, "settlements", filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSettlements(rows), nil
}

// Save creates or updates a settlement
func (r *GormSettlementRepository) Save(ctx context.Context, record *ledger.Settlement) error {
	var model models.SettlementModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a settlement
func (r *GormSettlementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SettlementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all settlements
func (r *GormSettlementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SettlementModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toSettlements(rows []models.SettlementModel) []ledger.Settlement {
	records := make([]ledger.Settlement, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records
}

// Ensure GormSettlementRepository implements SettlementRepository
var _ ledger.SettlementRepository = (*GormSettlementRepository)(nil)
