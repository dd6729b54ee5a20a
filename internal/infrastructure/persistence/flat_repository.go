package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFlatRepository implements FlatRepository using GORM
type GormFlatRepository struct {
	db *gorm.DB
}

// NewGormFlatRepository creates a new GormFlatRepository
func NewGormFlatRepository(db *gorm.DB) *GormFlatRepository {
	return &GormFlatRepository{db: db}
}

// FindByID finds a flat by its ID
func (r *GormFlatRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Flat, error) {
	var model models.FlatModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTower returns the flats of a tower ordered by floor then number
func (r *GormFlatRepository) FindByTower(ctx context.Context, towerID uuid.UUID) ([]property.Flat, error) {
	var rows []models.FlatModel
	err := r.db.WithContext(ctx).
		Where("tower_id = ?", towerID).
		Order("floor ASC, number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	flats := make([]property.Flat, len(rows))
	for i := range rows {
		flats[i] = *rows[i].ToDomain()
	}
	return flats, nil
}

// FindByNumberAndFloor resolves the flat-owner login credential
func (r *GormFlatRepository) FindByNumberAndFloor(ctx context.Context, number, floor int) (*property.Flat, error) {
	var model models.FlatModel
	err := r.db.WithContext(ctx).
		Where("number = ? AND floor = ?", number, floor).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a flat
func (r *GormFlatRepository) Save(ctx context.Context, flat *property.Flat) error {
	var model models.FlatModel
	model.FromDomain(flat)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a flat
func (r *GormFlatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FlatModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all flats
func (r *GormFlatRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FlatModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormFlatRepository implements FlatRepository
var _ property.FlatRepository = (*GormFlatRepository)(nil)
