package models

import (
	"time"
)

// Vote records a viewer's single directional vote on a post.
// The combination of PostID and VoterUID must be unique; a vote change
// updates the row in place rather than creating a second one.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_voter" json:"post_id"`
	VoterUID  string    `gorm:"not null;uniqueIndex:idx_post_voter;size:36" json:"voter_uid"`
	Color     VoteColor `gorm:"type:varchar(10);not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
