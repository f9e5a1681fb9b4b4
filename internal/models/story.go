package models

import (
	"time"
)

// Story represents a short-lived image post. A user owns at most one
// story at a time; creating a new one replaces the old one. Expiry is
// enforced by read-time filtering on ExpiresAt, not by active purging.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryLifetime is how long a story stays visible after creation.
const StoryLifetime = 24 * time.Hour
