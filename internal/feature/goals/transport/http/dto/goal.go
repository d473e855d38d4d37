// Package dto defines the JSON shapes of the goals API.
package dto

import (
	"fmt"
	"time"

	"goal_backend/internal/feature/goals/domain/entity"
)

type GoalReq struct {
	Text string `json:"text"`
}

// GoalRes keys goals by _id, the identifier the web client expects.
type GoalRes struct {
	ID        string    `json:"_id"`
	User      string    `json:"user,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DeleteGoalRes struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func NewGoalRes(g *entity.Goal) GoalRes {
	return GoalRes{
		ID:        g.ID,
		User:      g.UserID,
		Text:      g.Text,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func NewGoalList(goals []entity.Goal) []GoalRes {
	out := make([]GoalRes, 0, len(goals))
	for i := range goals {
		out = append(out, NewGoalRes(&goals[i]))
	}
	return out
}

func NewDeleteGoalRes(id string) DeleteGoalRes {
	return DeleteGoalRes{ID: id, Message: fmt.Sprintf("Delete goal %s", id)}
}
