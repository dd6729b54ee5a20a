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

// GormMonthlySettlementRepository implements MonthlySettlementRepository using GORM
type GormMonthlySettlementRepository struct {
	db *gorm.DB
}

// NewGormMonthlySettlementRepository creates a new GormMonthlySettlementRepository
func NewGormMonthlySettlementRepository(db *gorm.DB) *GormMonthlySettlementRepository {
	return &GormMonthlySettlementRepository{db: db}
}

// FindByID finds a monthly settlement by its ID
func (r *GormMonthlySettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.MonthlySettlement, error) {
	var model models.MonthlySettlementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTower returns monthly settlements for every flat of a tower
func (r *GormMonthlySettlementRepository) FindByTower(ctx context.Context, towerID uuid.UUID, filter ledger.ListFilter) ([]ledger.MonthlySettlement, error) {
	var rows []models.MonthlySettlementModel
	query := r.db.WithContext(ctx).
		Joins("JOIN flats ON flats.id = monthly_settlements.flat_id").
		Where("flats.tower_id = ?", towerID)
	query = applyLedgerFilter(query, "monthly_settlements", filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMonthlySettlements(rows), nil
}

// FindByFlat returns a single flat's monthly settlements
func (r *GormMonthlySettlementRepository) FindByFlat(ctx context.Context, flatID uuid.UUID, filter ledger.ListFilter) ([]ledger.MonthlySettlement, error) {
	var rows []models.MonthlySettlementModel
	query := r.db.WithContext(ctx).Where("flat_id = ?", flatID)
	query = applyLedgerFilter(query, "monthly_settlements", filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMonthlySettlements(rows), nil
}

// Save creates or updates a monthly settlement. A second row for the same
// flat and month violates the unique index and comes back as ErrValidation.
func (r *GormMonthlySettlementRepository) Save(ctx context.Context, record *ledger.MonthlySettlement) error {
	var model models.MonthlySettlementModel
	model.FromDomain(record)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrValidation
		}
		return err
	}
	return nil
}

// Delete deletes a monthly settlement
func (r *GormMonthlySettlementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MonthlySettlementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all monthly settlements
func (r *GormMonthlySettlementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MonthlySettlementModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toMonthlySettlements(rows []models.MonthlySettlementModel) []ledger.MonthlySettlement {
	records := make([]ledger.MonthlySettlement, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records
}

// Ensure GormMonthlySettlementRepository implements MonthlySettlementRepository
var _ ledger.MonthlySettlementRepository = (*GormMonthlySettlementRepository)(nil)
