// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// MaxUsernameLength is the upper bound on username length enforced by the store schema.
const MaxUsernameLength = 100

// User represents a registered identity record.
// Records are created once at registration and never mutated afterwards.
type User struct {
	// ID is assigned by the store on creation.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is unique across all users.
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`

	// PasswordHash is the self-describing output of the password hasher.
	// The plaintext password is never stored.
	PasswordHash string `gorm:"size:255;not null" json:"password_hash"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
