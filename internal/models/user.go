// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the Ripple application. Accounts are
// provisioned by the identity provider's webhook, never by this
// service; ExternalID is the provider's stable reference and the only
// identity handlers ever trust. There is no credential material here.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"unique;not null" json:"external_id"`
	Username   string `gorm:"unique;not null" json:"username"`
	Avatar     string `json:"avatar"`
	Cover      string `json:"cover"`

	// Self-service profile fields, editable via profile update only.
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Description string `json:"description"`
	City        string `json:"city"`
	School      string `json:"school"`
	Work        string `json:"work"`
	Website     string `json:"website"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// PublicProfile is the subset of User safe to embed in notification
// payloads and other fan-out surfaces.
type PublicProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// Public returns the user's public profile view.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
		Name:     u.Name,
		Surname:  u.Surname,
	}
}
