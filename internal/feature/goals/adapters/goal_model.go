// Package adapters provides the goal repositories.
package adapters

import (
	"time"

	"goal_backend/internal/feature/goals/domain/entity"
)

// GoalModel is the GORM model for the goals table.
type GoalModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;size:36;not null;default:''"`
	Text      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts the GORM model to a domain entity.
func (m *GoalModel) ToEntity() entity.Goal {
	return entity.Goal{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GoalModelFromEntity converts a domain entity to a GORM model.
func GoalModelFromEntity(g *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:        g.ID,
		UserID:    g.UserID,
		Text:      g.Text,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
