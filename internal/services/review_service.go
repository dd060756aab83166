package services

import (
	"context"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/pkg/logger"
	"github.com/xcessv/beefboard/pkg/media"
	"go.uber.org/zap"
)

// ReviewService manages the subjects comment trees attach to.
type ReviewService struct {
	reviews       repositories.ReviewRepository
	comments      repositories.CommentRepository
	notifications *NotificationService
	activities    *ActivityService
	fanout        *Fanout
	media         media.Cleaner
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	commentRepo repositories.CommentRepository,
	notifications *NotificationService,
	activities *ActivityService,
	fanout *Fanout,
	cleaner media.Cleaner,
) *ReviewService {
	return &ReviewService{
		reviews:       reviewRepo,
		comments:      commentRepo,
		notifications: notifications,
		activities:    activities,
		fanout:        fanout,
		media:         cleaner,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, author *models.User, req *models.CreateReviewRequest) (*models.Review, error) {
	review := &models.Review{
		UserID:          author.ID,
		UserDisplayName: author.DisplayName,
		UserImage:       author.ProfileImage,
		Beefery:         req.Beefery,
		Location:        req.Location,
		Rating:          req.Rating,
		Content:         req.Content,
		ImageURL:        req.ImageURL,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.fanout.ReviewCreated(review)
	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*models.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

func (s *ReviewService) ListReviews(ctx context.Context, page, limit int) ([]models.Review, int64, error) {
	skip := int64((page - 1) * limit)
	return s.reviews.List(ctx, skip, int64(limit))
}

// SetReviewLike is the review-level like primitive; same contract as
// CommentService.SetCommentLike.
func (s *ReviewService) SetReviewLike(ctx context.Context, reviewID string, user *models.User, liked bool) (*models.Review, bool, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, false, err
	}

	var changed bool
	var err error
	if liked {
		changed, err = s.reviews.AddLike(ctx, reviewID, models.NewLikeRecord(user))
	} else {
		changed, err = s.reviews.RemoveLike(ctx, reviewID, user.ID)
	}
	if err != nil {
		return nil, false, err
	}

	updated, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, false, err
	}

	if changed && liked {
		s.fanout.ReviewLiked(updated, user)
	}
	return updated, changed, nil
}

func (s *ReviewService) ToggleReviewLike(ctx context.Context, reviewID string, user *models.User) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	updated, _, err := s.SetReviewLike(ctx, reviewID, user, !review.LikedBy(user.ID))
	return updated, err
}

// DeleteReview removes a review together with its whole comment tree and
// the notifications/activities referencing either. Author or admin only.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string, requester *models.User) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != requester.ID && !requester.IsAdmin() {
		return apperrors.Authorizationf("only the author or an admin can delete this review")
	}

	comments, err := s.comments.GetByReviewID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.ImageURL != "" {
		if err := s.media.Remove(ctx, review.ImageURL); err != nil {
			logger.Warn("review media cleanup failed",
				zap.String("review_id", reviewID), zap.Error(err))
		}
	}

	commentIDs := make([]string, 0, len(comments))
	for i := range comments {
		commentIDs = append(commentIDs, comments[i].ID)
		if comments[i].Media != nil && comments[i].Media.URL != "" {
			if err := s.media.Remove(ctx, comments[i].Media.URL); err != nil {
				logger.Warn("comment media cleanup failed",
					zap.String("comment_id", comments[i].ID), zap.Error(err))
			}
		}
	}

	if _, err := s.comments.DeleteByIDs(ctx, commentIDs); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	// Primary delete committed; sweep weak references best-effort.
	contentIDs := append(commentIDs, reviewID)
	if err := s.notifications.DeleteForContent(ctx, contentIDs); err != nil {
		logger.Warn("notification cascade cleanup failed",
			zap.String("review_id", reviewID), zap.Error(err))
	}
	if err := s.activities.DeleteForContent(ctx, contentIDs); err != nil {
		logger.Warn("activity cascade cleanup failed",
			zap.String("review_id", reviewID), zap.Error(err))
	}
	return nil
}
