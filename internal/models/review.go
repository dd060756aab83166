package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is the subject a comment tree attaches to (MongoDB).
type Review struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          uint               `bson:"user_id" json:"user_id"`
	UserDisplayName string             `bson:"user_display_name" json:"user_display_name"`
	UserImage       string             `bson:"user_image,omitempty" json:"user_image,omitempty"`
	Beefery         string             `bson:"beefery" json:"beefery"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"`
	Content         string             `bson:"content" json:"content"`
	ImageURL        string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Likes           []LikeRecord       `bson:"likes" json:"likes"`
	CommentsCount   int64              `bson:"comments_count" json:"comments_count"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// LikedBy reports whether userID is a member of the review's like set.
func (r *Review) LikedBy(userID uint) bool {
	for _, l := range r.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

type CreateReviewRequest struct {
	Beefery  string  `json:"beefery" validate:"required,min=1,max=120"`
	Location string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Rating   float64 `json:"rating" validate:"required,min=0,max=10"`
	Content  string  `json:"content" validate:"required,min=1,max=5000"`
	ImageURL string  `json:"image_url,omitempty" validate:"omitempty,url"`
}
