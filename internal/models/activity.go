package models

import (
	"time"

	"github.com/thoas/go-funk"
)

// Closed set of activity types. Record rejects anything else.
const (
	ActivityReviewLike    = "review_like"
	ActivityCommentLike   = "comment_like"
	ActivityReviewComment = "review_comment"
	ActivityNewUser       = "new_user"
	ActivityNewReview     = "new_review"
	ActivityNewsLike      = "news_like"
	ActivityPollVote      = "poll_vote"
)

var ActivityTypes = []string{
	ActivityReviewLike,
	ActivityCommentLike,
	ActivityReviewComment,
	ActivityNewUser,
	ActivityNewReview,
	ActivityNewsLike,
	ActivityPollVote,
}

func ValidActivityType(t string) bool {
	return funk.ContainsString(ActivityTypes, t)
}

// ActivityActor is who performed the action (denormalized snapshot).
type ActivityActor struct {
	UserID       uint   `json:"user_id"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// ActivitySubject is who is affected by the action. A zero UserID means the
// activity has no natural recipient (new_user, new_review) and no
// notification is derived from it.
type ActivitySubject struct {
	UserID      uint   `json:"user_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// ActivityTarget describes what was acted on, denormalized so the feed can
// render without re-fetching. ID and ParentID are weak references; readers
// must tolerate them dangling after the target is deleted.
type ActivityTarget struct {
	Type     string `json:"type"` // review, comment, news
	ID       string `json:"id" gorm:"index"`
	Beefery  string `json:"beefery,omitempty"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	ParentID string `json:"parent_id,omitempty" gorm:"index"`
}

// Activity is an append-only record of "who did what to whom" (PostgreSQL).
// Never mutated; deleted only in bulk when its target content is deleted.
type Activity struct {
	ID        uint                   `json:"id" gorm:"primaryKey"`
	Type      string                 `json:"type" gorm:"size:30;index"`
	Actor     ActivityActor          `json:"actor" gorm:"embedded;embeddedPrefix:actor_"`
	Subject   ActivitySubject        `json:"subject,omitempty" gorm:"embedded;embeddedPrefix:subject_"`
	Target    ActivityTarget         `json:"target" gorm:"embedded;embeddedPrefix:target_"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time              `json:"created_at" gorm:"index"`
}

func (a *Activity) HasSubject() bool {
	return a.Subject.UserID != 0
}

// ActivityInput is the recorder's accepted payload.
type ActivityInput struct {
	Type     string                 `json:"type"`
	Actor    ActivityActor          `json:"actor"`
	Subject  ActivitySubject        `json:"subject,omitempty"`
	Target   ActivityTarget         `json:"target"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
