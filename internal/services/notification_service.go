package services

import (
	"context"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/realtime"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/pkg/logger"
	"go.uber.org/zap"
)

// NotificationService persists per-recipient notifications and signals the
// realtime hub when a recipient's unread count changes.
type NotificationService struct {
	notifications repositories.NotificationRepository
	hub           *realtime.Hub
}

func NewNotificationService(notifRepo repositories.NotificationRepository, hub *realtime.Hub) *NotificationService {
	return &NotificationService{notifications: notifRepo, hub: hub}
}

// Create persists a notification. Self-notifications (sender == recipient)
// are skipped and return (nil, nil), not an error. A missing target id is a
// validation failure: it means the denormalized snapshot was never populated
// upstream and the notification could not be rendered or resolved.
func (s *NotificationService) Create(ctx context.Context, input *models.NotificationInput) (*models.Notification, error) {
	if input.Sender.UserID == input.RecipientID {
		return nil, nil
	}
	if input.Target.ID == "" {
		return nil, apperrors.Validationf("notification target id is required")
	}
	if input.RecipientID == 0 {
		return nil, apperrors.Validationf("notification recipient is required")
	}

	notification := &models.Notification{
		Type:        input.Type,
		Sender:      input.Sender,
		RecipientID: input.RecipientID,
		Target:      input.Target,
	}
	if err := s.notifications.Create(notification); err != nil {
		return nil, err
	}

	s.publishUnreadCount(input.RecipientID)
	return notification, nil
}

// List returns one page of the recipient's notifications plus total and
// unread counts.
func (s *NotificationService) List(ctx context.Context, recipientID uint, page, limit int, typeFilter string) ([]models.Notification, int64, int64, error) {
	if typeFilter != "" && !models.ValidActivityType(typeFilter) {
		return nil, 0, 0, apperrors.Validationf("unknown notification type %q", typeFilter)
	}

	items, total, err := s.notifications.GetByRecipientID(recipientID, page, limit, typeFilter)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.notifications.GetUnreadCount(recipientID)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.notifications.GetUnreadCount(recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID, recipientID uint) (*models.Notification, error) {
	notification, err := s.notifications.MarkAsRead(notificationID, recipientID)
	if err != nil {
		return nil, err
	}
	s.publishUnreadCount(recipientID)
	return notification, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	if err := s.notifications.MarkAllAsRead(recipientID); err != nil {
		return err
	}
	s.publishUnreadCount(recipientID)
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, notificationID, recipientID uint) error {
	if err := s.notifications.Delete(notificationID, recipientID); err != nil {
		return err
	}
	s.publishUnreadCount(recipientID)
	return nil
}

func (s *NotificationService) DeleteAllForRecipient(ctx context.Context, recipientID uint) error {
	if err := s.notifications.DeleteAllForRecipient(recipientID); err != nil {
		return err
	}
	s.publishUnreadCount(recipientID)
	return nil
}

// DeleteForContent removes every notification pointing at the given content
// ids. Called by the cascade deleters; recipients are not signalled since
// unread counts only shrink here and the next poll corrects them.
func (s *NotificationService) DeleteForContent(ctx context.Context, targetIDs []string) error {
	return s.notifications.DeleteByTargetIDs(targetIDs)
}

func (s *NotificationService) publishUnreadCount(recipientID uint) {
	count, err := s.notifications.GetUnreadCount(recipientID)
	if err != nil {
		logger.Warn("failed to read unread count for realtime signal",
			zap.Uint("recipient_id", recipientID), zap.Error(err))
		return
	}
	s.hub.Publish(recipientID, realtime.Event{
		Type:        realtime.EventUnreadCount,
		UnreadCount: count,
	})
}
