package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PollOption is one answer of a news poll. Voters holds user ids; a user id
// appears in at most one option's voter list.
type PollOption struct {
	Text   string `bson:"text" json:"text"`
	Voters []uint `bson:"voters" json:"voters"`
}

type Poll struct {
	Question string       `bson:"question" json:"question"`
	Options  []PollOption `bson:"options" json:"options"`
}

// News is an editorial post (MongoDB) that can carry a like set and an
// optional poll.
type News struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID  uint               `bson:"author_id" json:"author_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Likes     []LikeRecord       `bson:"likes" json:"likes"`
	Poll      *Poll              `bson:"poll,omitempty" json:"poll,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// LikedBy reports whether userID is a member of the news item's like set.
func (n *News) LikedBy(userID uint) bool {
	for _, l := range n.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// VotedOption returns the option index the user voted for, or -1.
func (n *News) VotedOption(userID uint) int {
	if n.Poll == nil {
		return -1
	}
	for i, opt := range n.Poll.Options {
		for _, v := range opt.Voters {
			if v == userID {
				return i
			}
		}
	}
	return -1
}

type CreatePollRequest struct {
	Question string   `json:"question" validate:"required,min=1,max=300"`
	Options  []string `json:"options" validate:"required,min=2,max=10,dive,required,max=120"`
}

type CreateNewsRequest struct {
	Title    string             `json:"title" validate:"required,min=1,max=200"`
	Content  string             `json:"content" validate:"required,min=1,max=10000"`
	ImageURL string             `json:"image_url,omitempty" validate:"omitempty,url"`
	Poll     *CreatePollRequest `json:"poll,omitempty"`
}

type VotePollRequest struct {
	OptionIndex int `json:"option_index"`
}
