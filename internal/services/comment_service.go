package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
	"github.com/xcessv/beefboard/pkg/logger"
	"github.com/xcessv/beefboard/pkg/media"
	"go.uber.org/zap"
)

// CommentService owns the discussion tree attached to a review: adding
// comments and replies, reconciling like state, building the display tree
// and cascade-deleting subtrees. Every method performs its primary write
// first; fan-out and bookkeeping after that point are best-effort.
type CommentService struct {
	comments      repositories.CommentRepository
	reviews       repositories.ReviewRepository
	notifications *NotificationService
	activities    *ActivityService
	fanout        *Fanout
	media         media.Cleaner
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
	notifications *NotificationService,
	activities *ActivityService,
	fanout *Fanout,
	cleaner media.Cleaner,
) *CommentService {
	return &CommentService{
		comments:      commentRepo,
		reviews:       reviewRepo,
		notifications: notifications,
		activities:    activities,
		fanout:        fanout,
		media:         cleaner,
	}
}

// AddComment creates a comment or reply on a review. At least one of text or
// media must be present. The parent, when given, must exist and belong to
// the same review.
func (s *CommentService) AddComment(ctx context.Context, reviewID string, author *models.User, req *models.CreateCommentRequest) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && (req.Media == nil || req.Media.URL == "") {
		return nil, apperrors.Validationf("comment requires text or media")
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err = s.comments.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ReviewID != reviewID {
			return nil, apperrors.Validationf("parent comment belongs to a different review")
		}
	}

	comment := &models.Comment{
		ID:              uuid.NewString(),
		ReviewID:        reviewID,
		UserID:          author.ID,
		UserDisplayName: author.DisplayName,
		UserImage:       author.ProfileImage,
		Text:            text,
		Media:           req.Media,
		Likes:           []models.LikeRecord{},
		CreatedAt:       time.Now().UTC(),
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}

	// Primary write committed; everything below is best-effort.
	if err := s.reviews.AdjustCommentsCount(ctx, reviewID, 1); err != nil {
		logger.Warn("failed to bump comments count",
			zap.String("review_id", reviewID), zap.Error(err))
	}
	s.fanout.CommentAdded(review, comment, parent)

	return comment, nil
}

// GetCommentTree returns the review's full discussion forest, oldest first
// at every level.
func (s *CommentService) GetCommentTree(ctx context.Context, reviewID string) ([]*models.CommentNode, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	comments, err := s.comments.GetByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

// SetCommentLike is the like primitive: it makes "user likes comment" equal
// liked, regardless of current state, so retries and duplicate clicks are
// harmless. Returns the authoritative comment and whether the set changed.
// Only the none→liked transition fans out.
func (s *CommentService) SetCommentLike(ctx context.Context, reviewID, commentID string, user *models.User, liked bool) (*models.Comment, bool, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, false, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, false, err
	}
	if comment.ReviewID != reviewID {
		return nil, false, apperrors.NotFoundf("comment %s not found on review %s", commentID, reviewID)
	}

	var changed bool
	if liked {
		changed, err = s.comments.AddLike(ctx, commentID, models.NewLikeRecord(user))
	} else {
		changed, err = s.comments.RemoveLike(ctx, commentID, user.ID)
	}
	if err != nil {
		return nil, false, err
	}

	updated, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, false, err
	}

	if changed && liked {
		s.fanout.CommentLiked(review, updated, user)
	}
	return updated, changed, nil
}

// ToggleCommentLike is a convenience over SetCommentLike: the server decides
// direction from current membership. Not safe to blindly retry on timeout —
// callers needing that use SetCommentLike.
func (s *CommentService) ToggleCommentLike(ctx context.Context, reviewID, commentID string, user *models.User) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	updated, _, err := s.SetCommentLike(ctx, reviewID, commentID, user, !comment.LikedBy(user.ID))
	return updated, err
}

// DeleteComment removes a comment and its full reply subtree. The requester
// must be the comment's author or an admin. Media cleanup is attempted per
// node and never blocks structural deletion; notifications and activities
// referencing the deleted ids are swept afterwards, best-effort.
func (s *CommentService) DeleteComment(ctx context.Context, reviewID, commentID string, requester *models.User) (*models.DeletionResult, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	all, err := s.comments.GetByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	var target *models.Comment
	byID := make(map[string]*models.Comment, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	target = byID[commentID]
	if target == nil {
		return nil, apperrors.NotFoundf("comment %s not found on review %s", commentID, reviewID)
	}

	if target.UserID != requester.ID && !requester.IsAdmin() {
		return nil, apperrors.Authorizationf("only the author or an admin can delete this comment")
	}

	ids := CollectDescendants(all, commentID)

	for _, id := range ids {
		c := byID[id]
		if c == nil || c.Media == nil || c.Media.URL == "" {
			continue
		}
		if err := s.media.Remove(ctx, c.Media.URL); err != nil {
			logger.Warn("comment media cleanup failed",
				zap.String("comment_id", id),
				zap.String("url", c.Media.URL),
				zap.Error(err))
		}
	}

	deleted, err := s.comments.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Primary delete committed; the rest is best-effort bookkeeping.
	if err := s.reviews.AdjustCommentsCount(ctx, reviewID, -deleted); err != nil {
		logger.Warn("failed to lower comments count",
			zap.String("review_id", reviewID), zap.Error(err))
	}
	if err := s.notifications.DeleteForContent(ctx, ids); err != nil {
		logger.Warn("notification cascade cleanup failed",
			zap.String("comment_id", commentID), zap.Error(err))
	}
	if err := s.activities.DeleteForContent(ctx, ids); err != nil {
		logger.Warn("activity cascade cleanup failed",
			zap.String("comment_id", commentID), zap.Error(err))
	}

	return &models.DeletionResult{DeletedIDs: ids}, nil
}
