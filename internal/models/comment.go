package models

import "time"

// CommentMedia is an optional attachment on a comment.
type CommentMedia struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // image, video
}

// LikeRecord is one entry in a like set. UserID is unique within the set;
// display fields are denormalized snapshots for rendering without a join.
type LikeRecord struct {
	UserID       uint      `bson:"user_id" json:"user_id"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	ProfileImage string    `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func NewLikeRecord(u *User) LikeRecord {
	return LikeRecord{
		UserID:       u.ID,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
		CreatedAt:    time.Now().UTC(),
	}
}

// Comment is one node of a review's discussion tree (MongoDB). ParentID nil
// means root comment. At least one of Text or Media is present.
type Comment struct {
	ID              string        `bson:"_id" json:"id"`
	ReviewID        string        `bson:"review_id" json:"review_id"`
	UserID          uint          `bson:"user_id" json:"user_id"`
	UserDisplayName string        `bson:"user_display_name" json:"user_display_name"`
	UserImage       string        `bson:"user_image,omitempty" json:"user_image,omitempty"`
	ParentID        *string       `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Text            string        `bson:"text,omitempty" json:"text,omitempty"`
	Media           *CommentMedia `bson:"media,omitempty" json:"media,omitempty"`
	Likes           []LikeRecord  `bson:"likes" json:"likes"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
}

// LikedBy reports whether userID is a member of the comment's like set.
func (c *Comment) LikedBy(userID uint) bool {
	for _, l := range c.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// CommentNode is a comment with its resolved children, ordered oldest-first.
// Built per read by the tree builder; never persisted.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

type CreateCommentRequest struct {
	Text     string        `json:"text" validate:"omitempty,max=2000"`
	Media    *CommentMedia `json:"media,omitempty"`
	ParentID *string       `json:"parent_id,omitempty"`
}

type SetLikeRequest struct {
	Liked bool `json:"liked"`
}

// DeletionResult reports the comment ids removed by a cascade delete.
type DeletionResult struct {
	DeletedIDs []string `json:"deleted_ids"`
}
