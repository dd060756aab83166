package services

import (
	"context"
	"time"

	"github.com/jinzhu/copier"
	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/pkg/logger"
	"go.uber.org/zap"
)

// ActivityService is the recorder: it appends immutable activity records and
// forwards a derived notification when the activity has a recipient.
type ActivityService struct {
	activities    repositories.ActivityRepository
	notifications *NotificationService
}

func NewActivityService(activityRepo repositories.ActivityRepository, notifications *NotificationService) *ActivityService {
	return &ActivityService{activities: activityRepo, notifications: notifications}
}

// Record validates the type, persists the activity, then forwards a
// notification when subject is present and differs from the actor. The
// forward step is best-effort: its failure is logged and never fails or
// rolls back the persisted activity.
func (s *ActivityService) Record(ctx context.Context, input *models.ActivityInput) (*models.Activity, error) {
	if !models.ValidActivityType(input.Type) {
		return nil, apperrors.Validationf("unknown activity type %q", input.Type)
	}

	activity := &models.Activity{
		Type:      input.Type,
		Actor:     input.Actor,
		Subject:   input.Subject,
		Target:    input.Target,
		Metadata:  input.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.activities.Create(activity); err != nil {
		return nil, err
	}

	if activity.HasSubject() && activity.Subject.UserID != activity.Actor.UserID {
		if _, err := s.notifications.Create(ctx, deriveNotification(activity)); err != nil {
			logger.Error("notification dispatch failed",
				zap.String("activity_type", activity.Type),
				zap.Uint("recipient_id", activity.Subject.UserID),
				zap.Error(err))
		}
	}

	return activity, nil
}

func (s *ActivityService) List(ctx context.Context, page, limit int) ([]models.Activity, int64, error) {
	return s.activities.List(page, limit)
}

// DeleteForContent bulk-removes activities referencing deleted content ids.
func (s *ActivityService) DeleteForContent(ctx context.Context, targetIDs []string) error {
	return s.activities.DeleteByTargetIDs(targetIDs)
}

// deriveNotification maps a persisted activity onto the dispatcher's input
// shape. Sender mirrors the actor snapshot field for field.
func deriveNotification(a *models.Activity) *models.NotificationInput {
	input := &models.NotificationInput{
		Type:        a.Type,
		RecipientID: a.Subject.UserID,
	}
	copier.Copy(&input.Sender, &a.Actor)
	input.Target = models.NotificationTarget{
		Type:    a.Target.Type,
		ID:      a.Target.ID,
		Beefery: a.Target.Beefery,
		Content: a.Target.Content,
	}
	return input
}
