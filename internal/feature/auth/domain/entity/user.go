// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is a UUID assigned by the store on creation.
	ID string `gorm:"primaryKey;size:36"`

	Name string `gorm:"size:255;not null"`

	// Email is stored trimmed and lower-cased. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt digest. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
