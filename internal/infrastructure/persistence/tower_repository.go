package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/property"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTowerRepository implements TowerRepository using GORM
type GormTowerRepository struct {
	db *gorm.DB
}

// NewGormTowerRepository creates a new GormTowerRepository
func NewGormTowerRepository(db *gorm.DB) *GormTowerRepository {
	return &GormTowerRepository{db: db}
}

// FindByID finds a tower by its ID
func (r *GormTowerRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Tower, error) {
	var model models.TowerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all towers ordered by name
func (r *GormTowerRepository) FindAll(ctx context.Context) ([]property.Tower, error) {
	var rows []models.TowerModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTowers(rows), nil
}

// FindByUserEmail returns the towers assigned to a staff user's email. The
// login page calls it before authentication to populate the tower selector.
func (r *GormTowerRepository) FindByUserEmail(ctx context.Context, email string) ([]property.Tower, error) {
	var rows []models.TowerModel
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.tower_id = towers.id").
		Where("users.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("towers.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toTowers(rows), nil
}

// Save creates or updates a tower
func (r *GormTowerRepository) Save(ctx context.Context, tower *property.Tower) error {
	var model models.TowerModel
	model.FromDomain(tower)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a tower
func (r *GormTowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TowerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all towers
func (r *GormTowerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TowerModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toTowers(rows []models.TowerModel) []property.Tower {
	towers := make([]property.Tower, len(rows))
	for i := range rows {
		towers[i] = *rows[i].ToDomain()
	}
	return towers
}

// Ensure GormTowerRepository implements TowerRepository
var _ property.TowerRepository = (*GormTowerRepository)(nil)
