package models

import (
	"time"
)

// Comment is a flat record in a post's reply forest. ParentID is zero for
// top-level comments and otherwise references another comment of the same
// post. LikeCount stays consistent with the CommentLike rows.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ParentID  uint      `gorm:"not null;default:0;index" json:"parent_id"`
	AuthorUID string    `gorm:"not null;size:36" json:"author_uid"`
	Author    User      `gorm:"foreignKey:AuthorUID;references:UID" json:"author,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	LikeCount int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time `json:"created_at"`

	// LikedBy is the set of viewer UIDs that liked this comment, filled in
	// from comment_likes when listing a thread.
	LikedBy []string `gorm:"-" json:"liked_by,omitempty"`
}

// CommentLike marks that a viewer liked a comment.
// The combination of CommentID and ViewerUID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_viewer" json:"comment_id"`
	ViewerUID string    `gorm:"not null;uniqueIndex:idx_comment_viewer;size:36" json:"viewer_uid"`
	CreatedAt time.Time `json:"created_at"`
}
