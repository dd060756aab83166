package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model   `json:"-"`
	ID           uint   `json:"id" gorm:"primaryKey"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	ProfileImage string `json:"profile_image,omitempty"`
	Role         string `json:"role" gorm:"size:20;default:user"`
	Password     string `json:"-"`                                         // Store hashed password, ignore for JSON serialization
	FirebaseUID  string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserCompact is the denormalized author shape embedded into comments,
// activities and notifications. It is a snapshot taken at write time, not a
// live join; a later display-name change does not rewrite old records.
type UserCompact struct {
	ID           uint   `json:"id"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:           u.ID,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
	}
}

type RegisterRequest struct {
	DisplayName  string `json:"display_name" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	ProfileImage string `json:"profile_image,omitempty" validate:"omitempty,url"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
