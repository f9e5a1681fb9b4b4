// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follower is a confirmed one-directional follow edge.
// FollowerID follows FollowingID; the pair is unique. Direction is
// never normalized: A→B and B→A are distinct edges.
type Follower struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follower_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follower_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	FollowerUser  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	FollowingUser User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follower) TableName() string {
	return "followers"
}

// FollowRequest is a pending, unconfirmed follow intent from Sender to
// Receiver, awaiting the receiver's accept or decline.
type FollowRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;uniqueIndex:idx_follow_request_pair" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;uniqueIndex:idx_follow_request_pair" json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// Block records that Blocker has blocked Blocked. Blocking does not
// sever existing follow edges or pending requests; see the
// block_cascade feature flag for the cascading variant.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedID uint      `gorm:"not null;uniqueIndex:idx_block_pair" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`

	Blocker User `gorm:"foreignKey:BlockerID" json:"blocker,omitempty"`
	Blocked User `gorm:"foreignKey:BlockedID" json:"blocked,omitempty"`
}

// FollowState is the viewer-facing relationship state toward a user.
type FollowState string

const (
	// FollowStateNone indicates no relationship.
	FollowStateNone FollowState = "none"
	// FollowStateRequested indicates a pending follow request.
	FollowStateRequested FollowState = "requested"
	// FollowStateFollowing indicates a confirmed follow edge.
	FollowStateFollowing FollowState = "following"
)
