// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// LockThreshold is the comment count at which a discussion permanently locks.
const LockThreshold = 10

// VoteColor identifies one of a post's two sides.
type VoteColor string

const (
	// ColorBlue selects the post's BlueSide option.
	ColorBlue VoteColor = "blue"
	// ColorRed selects the post's RedSide option.
	ColorRed VoteColor = "red"
)

// Valid reports whether the color is one of the two declared options.
func (c VoteColor) Valid() bool {
	return c == ColorBlue || c == ColorRed
}

// CounterColumn returns the posts column holding the tally for this color.
func (c VoteColor) CounterColumn() string {
	if c == ColorRed {
		return "red_count"
	}
	return "blue_count"
}

// Other returns the opposing color.
func (c VoteColor) Other() VoteColor {
	if c == ColorBlue {
		return ColorRed
	}
	return ColorBlue
}

// Post represents a two-sided discussion post. The vote and comment counters
// are mutated only through the vote and comment repositories so they stay
// consistent with the underlying Vote and Comment records.
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	AuthorUID    string         `gorm:"not null;index;size:36" json:"author_uid"`
	Author       User           `gorm:"foreignKey:AuthorUID;references:UID" json:"author,omitempty"`
	Title        string         `gorm:"not null" json:"title"`
	Topic        string         `json:"topic"`
	BlueSide     string         `gorm:"not null" json:"blue_side"`
	RedSide      string         `gorm:"not null" json:"red_side"`
	IsGlobal     bool           `gorm:"not null;default:true;index" json:"is_global"`
	BlueCount    int            `gorm:"not null;default:0" json:"blue_count"`
	RedCount     int            `gorm:"not null;default:0" json:"red_count"`
	CommentCount int            `gorm:"not null;default:0" json:"comment_count"`
	ChangeCount  int            `gorm:"not null;default:0" json:"change_count"`
	Locked       bool           `gorm:"not null;default:false" json:"locked"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// SideLabel returns the display label for a color ("Blue" side vs "Red" side).
func (p *Post) SideLabel(c VoteColor) string {
	if c == ColorRed {
		return p.RedSide
	}
	return p.BlueSide
}
