package models

import "time"

// NotificationSender mirrors ActivityActor (denormalized snapshot).
type NotificationSender struct {
	UserID       uint   `json:"user_id"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// NotificationTarget points at the content the notification is about. ID is a
// weak reference; it may dangle after the content is deleted.
type NotificationTarget struct {
	Type    string `json:"type"` // review, comment, news
	ID      string `json:"id" gorm:"index"`
	Beefery string `json:"beefery,omitempty"`
	Content string `json:"content,omitempty"` // short snippet for rendering
}

// Notification is a per-recipient record (PostgreSQL). Never created when
// sender == recipient.
type Notification struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	Type        string             `json:"type" gorm:"size:30;index"`
	Sender      NotificationSender `json:"sender" gorm:"embedded;embeddedPrefix:sender_"`
	RecipientID uint               `json:"recipient_id" gorm:"index"`
	Target      NotificationTarget `json:"target" gorm:"embedded;embeddedPrefix:target_"`
	IsRead      bool               `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
}

// NotificationInput is the dispatcher's accepted payload.
type NotificationInput struct {
	Type        string             `json:"type"`
	Sender      NotificationSender `json:"sender"`
	RecipientID uint               `json:"recipient_id"`
	Target      NotificationTarget `json:"target"`
}
