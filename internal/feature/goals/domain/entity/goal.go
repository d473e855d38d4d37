// Package entity defines the domain entities for the goals feature.
package entity

import "time"

// Goal is a short text owned by one user. UserID is empty only for goals
// created while the goals API runs in anonymous mode.
type Goal struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the goal.
func (g *Goal) OwnedBy(userID string) bool {
	return g.UserID == userID
}
