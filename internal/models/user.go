// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered user. The UID is opaque and stable; it is
// minted at signup and referenced by every other record.
type User struct {
	UID           string    `gorm:"primaryKey;size:36" json:"uid"`
	PreferredName string    `gorm:"size:100" json:"preferred_name"`
	Bio           string    `gorm:"type:text" json:"bio"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
