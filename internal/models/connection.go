package models

import (
	"time"
)

// ConnectionRequest is a pending, directed request from one user to another.
// At most one pending request exists per ordered (FromUID, ToUID) pair; the
// row is deleted (not mutated) on accept or reject.
type ConnectionRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FromUID   string    `gorm:"not null;uniqueIndex:idx_request_pair;size:36" json:"from_uid"`
	ToUID     string    `gorm:"not null;uniqueIndex:idx_request_pair;index;size:36" json:"to_uid"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	From User `gorm:"foreignKey:FromUID;references:UID" json:"from,omitempty"`
	To   User `gorm:"foreignKey:ToUID;references:UID" json:"to,omitempty"`
}

// Connection is an undirected acquaintance edge. The pair is stored
// normalized (User1UID < User2UID) so the unique index holds regardless of
// which side initiated, and at most one edge exists per unordered pair.
type Connection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1UID  string    `gorm:"not null;uniqueIndex:idx_connection_pair;size:36" json:"user1_uid"`
	User2UID  string    `gorm:"not null;uniqueIndex:idx_connection_pair;index;size:36" json:"user2_uid"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizePair orders two UIDs so {a, b} always maps to the same
// (User1UID, User2UID) storage order.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// OtherUID returns the UID on the far side of the edge from uid.
func (c *Connection) OtherUID(uid string) string {
	if c.User1UID == uid {
		return c.User2UID
	}
	return c.User1UID
}
