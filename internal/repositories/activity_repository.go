package repositories

import (
	"github.com/xcessv/beefboard/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for the append-only activity log.
type ActivityRepository interface {
	Create(activity *models.Activity) error
	List(page, limit int) ([]models.Activity, int64, error)
	// DeleteByTargetIDs bulk-removes activities whose target id or target
	// parent id matches — used when the referenced content is deleted.
	DeleteByTargetIDs(targetIDs []string) error
}

type postgresActivityRepository struct {
	db *gorm.DB
}

func NewPostgresActivityRepository(db *gorm.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

func (r *postgresActivityRepository) List(page, limit int) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	if err := r.db.Model(&models.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&activities).Error

	return activities, total, err
}

func (r *postgresActivityRepository) DeleteByTargetIDs(targetIDs []string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.Where("target_id IN ? OR target_parent_id IN ?", targetIDs, targetIDs).
		Delete(&models.Activity{}).Error
}
