package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/audit"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserLogRepository implements UserLogRepository using GORM
type GormUserLogRepository struct {
	db *gorm.DB
}

// NewGormUserLogRepository creates a new GormUserLogRepository
func NewGormUserLogRepository(db *gorm.DB) *GormUserLogRepository {
	return &GormUserLogRepository{db: db}
}

// FindByID finds an audit entry by its ID
func (r *GormUserLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.UserLog, error) {
	var model models.UserLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns audit entries matching the filter, newest first
func (r *GormUserLogRepository) FindAll(ctx context.Context, filter audit.ListFilter) ([]audit.UserLog, error) {
	var rows []models.UserLogModel
	query := r.db.WithContext(ctx).Model(&models.UserLogModel{})

	if filter.Month != nil {
		start, next := ledger.MonthRange(*filter.Month)
		query = query.Where("created_at >= ? AND created_at < ?", start, next)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(action) LIKE ?", pattern)
	}

	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.UserLog, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

// Save creates an audit entry
func (r *GormUserLogRepository) Save(ctx context.Context, entry *audit.UserLog) error {
	var model models.UserLogModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes an audit entry
func (r *GormUserLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserLogModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all audit entries
func (r *GormUserLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserLogModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormUserLogRepository implements UserLogRepository
var _ audit.UserLogRepository = (*GormUserLogRepository)(nil)
