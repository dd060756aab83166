package services

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/pkg/logger"
	"go.uber.org/zap"
)

const fanoutTimeout = 10 * time.Second

// Fanout turns a committed primary write into its secondary effects: an
// activity record and, through the recorder, a notification plus realtime
// signal. Every step runs on a context detached from the request so a client
// timeout cannot abort it, and every failure is logged and swallowed — the
// primary write is already durable and is never undone.
type Fanout struct {
	activities *ActivityService
}

func NewFanout(activities *ActivityService) *Fanout {
	return &Fanout{activities: activities}
}

func (f *Fanout) record(input *models.ActivityInput) {
	ctx, cancel := context.WithTimeout(context.Background(), fanoutTimeout)
	defer cancel()
	if _, err := f.activities.Record(ctx, input); err != nil {
		logger.Error("activity fan-out failed",
			zap.String("activity_type", input.Type),
			zap.String("target_id", input.Target.ID),
			zap.Error(err))
	}
}

// CommentAdded records a review_comment. The recipient is the parent
// comment's author for replies, else the review's author.
func (f *Fanout) CommentAdded(review *models.Review, comment *models.Comment, parent *models.Comment) {
	subject := models.ActivitySubject{
		UserID:      review.UserID,
		DisplayName: review.UserDisplayName,
	}
	metadata := map[string]interface{}{
		"comment_id": comment.ID,
		"review_id":  comment.ReviewID,
	}
	if parent != nil {
		subject = models.ActivitySubject{
			UserID:      parent.UserID,
			DisplayName: parent.UserDisplayName,
		}
		metadata["parent_comment_id"] = parent.ID
	}

	f.record(&models.ActivityInput{
		Type:     models.ActivityReviewComment,
		Actor:    commentActor(comment),
		Subject:  subject,
		Target:   commentTarget(review, comment),
		Metadata: metadata,
	})
}

// CommentLiked records a comment_like addressed to the comment's author.
// Only called on the none→liked transition; removing a like fans nothing out.
func (f *Fanout) CommentLiked(review *models.Review, comment *models.Comment, liker *models.User) {
	f.record(&models.ActivityInput{
		Type:  models.ActivityCommentLike,
		Actor: userActor(liker),
		Subject: models.ActivitySubject{
			UserID:      comment.UserID,
			DisplayName: comment.UserDisplayName,
		},
		Target: commentTarget(review, comment),
		Metadata: map[string]interface{}{
			"comment_id": comment.ID,
			"review_id":  comment.ReviewID,
		},
	})
}

// ReviewCreated records a new_review. No subject: the actor is the author,
// so there is no natural recipient.
func (f *Fanout) ReviewCreated(review *models.Review) {
	f.record(&models.ActivityInput{
		Type: models.ActivityNewReview,
		Actor: models.ActivityActor{
			UserID:       review.UserID,
			DisplayName:  review.UserDisplayName,
			ProfileImage: review.UserImage,
		},
		Target: models.ActivityTarget{
			Type:    "review",
			ID:      review.ID.Hex(),
			Beefery: review.Beefery,
			Content: snippet(review.Content),
		},
		Metadata: map[string]interface{}{
			"rating": review.Rating,
		},
	})
}

// ReviewLiked records a review_like addressed to the review's author.
func (f *Fanout) ReviewLiked(review *models.Review, liker *models.User) {
	f.record(&models.ActivityInput{
		Type:  models.ActivityReviewLike,
		Actor: userActor(liker),
		Subject: models.ActivitySubject{
			UserID:      review.UserID,
			DisplayName: review.UserDisplayName,
		},
		Target: models.ActivityTarget{
			Type:    "review",
			ID:      review.ID.Hex(),
			Beefery: review.Beefery,
			Content: snippet(review.Content),
		},
	})
}

// NewsLiked records a news_like addressed to the news author.
func (f *Fanout) NewsLiked(news *models.News, authorName string, liker *models.User) {
	f.record(&models.ActivityInput{
		Type:  models.ActivityNewsLike,
		Actor: userActor(liker),
		Subject: models.ActivitySubject{
			UserID:      news.AuthorID,
			DisplayName: authorName,
		},
		Target: models.ActivityTarget{
			Type:    "news",
			ID:      news.ID.Hex(),
			Title:   news.Title,
			Content: snippet(news.Content),
		},
	})
}

// PollVoted records a poll_vote addressed to the news author.
func (f *Fanout) PollVoted(news *models.News, authorName string, voter *models.User, optionIndex int) {
	f.record(&models.ActivityInput{
		Type:  models.ActivityPollVote,
		Actor: userActor(voter),
		Subject: models.ActivitySubject{
			UserID:      news.AuthorID,
			DisplayName: authorName,
		},
		Target: models.ActivityTarget{
			Type:  "news",
			ID:    news.ID.Hex(),
			Title: news.Title,
		},
		Metadata: map[string]interface{}{
			"option_index": optionIndex,
		},
	})
}

// UserRegistered records a new_user. No subject, no notification.
func (f *Fanout) UserRegistered(user *models.User) {
	f.record(&models.ActivityInput{
		Type:  models.ActivityNewUser,
		Actor: userActor(user),
		Target: models.ActivityTarget{
			Type: "user",
			ID:   strconv.FormatUint(uint64(user.ID), 10),
		},
	})
}

func userActor(u *models.User) models.ActivityActor {
	return models.ActivityActor{
		UserID:       u.ID,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
	}
}

func commentActor(c *models.Comment) models.ActivityActor {
	return models.ActivityActor{
		UserID:       c.UserID,
		DisplayName:  c.UserDisplayName,
		ProfileImage: c.UserImage,
	}
}

// commentTarget points at the comment itself with the review as the parent
// reference, so a comment cascade delete can sweep activities by target id
// and a review delete can sweep them by parent id.
func commentTarget(review *models.Review, comment *models.Comment) models.ActivityTarget {
	content := snippet(comment.Text)
	if content == "" && comment.Media != nil {
		content = "[" + comment.Media.Type + "]"
	}
	return models.ActivityTarget{
		Type:     "comment",
		ID:       comment.ID,
		Beefery:  review.Beefery,
		Content:  content,
		ParentID: comment.ReviewID,
	}
}

const snippetLen = 120

// snippet shortens denormalized content for feed and notification rendering.
func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetLen]) + "..."
}
