// Package entity defines the domain entities for the items feature.
package entity

import "time"

// Item is an entry of the shared shopping list. It has no owner.
type Item struct {
	ID   string    `gorm:"primaryKey;size:36"`
	Name string    `gorm:"size:255;not null"`
	Date time.Time `gorm:"index;not null"`
}
