// Package handler serves the goals API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/feature/goals/domain/entity"
	"goal_backend/internal/feature/goals/transport/http/dto"
	"goal_backend/internal/platform/apperr"
	jwtmw "goal_backend/internal/platform/jwt"
)

// GoalUsecase defines the goal operations the handler needs.
type GoalUsecase interface {
	List(ctx context.Context, callerID string) ([]entity.Goal, error)
	Create(ctx context.Context, callerID, text string) (*entity.Goal, error)
	Update(ctx context.Context, callerID, goalID, text string) (*entity.Goal, error)
	Delete(ctx context.Context, callerID, goalID string) (string, error)
}

type GoalHandler struct {
	goals GoalUsecase
}

func NewGoalHandler(goals GoalUsecase) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// callerID is empty when the route is mounted without the auth gate.
func callerID(c *gin.Context) string {
	id, _ := jwtmw.IdentityFrom(c.Request.Context())
	return id.ID
}

// List handles GET /api/goals.
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goals.List(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGoalList(goals))
}

// Create handles POST /api/goals.
func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.GoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Please add a text field"))
		return
	}

	goal, err := h.goals.Create(c.Request.Context(), callerID(c), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewGoalRes(goal))
}

// Update handles PUT /api/goals/:id.
func (h *GoalHandler) Update(c *gin.Context) {
	var req dto.GoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation("Please add a text field"))
		return
	}

	goal, err := h.goals.Update(c.Request.Context(), callerID(c), c.Param("id"), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGoalRes(goal))
}

// Delete handles DELETE /api/goals/:id.
func (h *GoalHandler) Delete(c *gin.Context) {
	id, err := h.goals.Delete(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDeleteGoalRes(id))
}
