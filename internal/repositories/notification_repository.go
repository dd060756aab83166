package repositories

import (
	"errors"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// GetByRecipientID returns a page of the recipient's notifications,
	// newest first, optionally filtered by type, plus the total count.
	GetByRecipientID(recipientID uint, page, limit int, typeFilter string) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID, recipientID uint) (*models.Notification, error)
	MarkAllAsRead(recipientID uint) error
	Delete(notificationID, recipientID uint) error
	DeleteAllForRecipient(recipientID uint) error
	// DeleteByTargetIDs bulk-removes notifications pointing at deleted content.
	DeleteByTargetIDs(targetIDs []string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int, typeFilter string) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("notification %d not found", notificationID)
		}
		return nil, err
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := r.db.Model(&models.Notification{}).
			Where("id = ?", notification.ID).
			Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) Delete(notificationID, recipientID uint) error {
	res := r.db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("notification %d not found", notificationID)
	}
	return nil
}

func (r *postgresNotificationRepository) DeleteAllForRecipient(recipientID uint) error {
	return r.db.Where("recipient_id = ?", recipientID).Delete(&models.Notification{}).Error
}

func (r *postgresNotificationRepository) DeleteByTargetIDs(targetIDs []string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.Where("target_id IN ?", targetIDs).Delete(&models.Notification{}).Error
}
