package usecase

import (
	"context"
	"errors"
	"strings"

	"goal_backend/internal/feature/goals/domain/entity"
	"goal_backend/internal/platform/apperr"
)

// GoalRepository abstracts the persistence layer for goals.
type GoalRepository interface {
	// ListByUser returns the goals of userID, oldest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Goal, error)
	// ListAll returns every goal, oldest first.
	ListAll(ctx context.Context) ([]entity.Goal, error)
	// FindByID returns ErrGoalNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.Goal, error)
	// Create assigns the ID and timestamps.
	Create(ctx context.Context, goal *entity.Goal) error
	// UpdateText returns the updated goal or ErrGoalNotFound.
	UpdateText(ctx context.Context, id, text string) (*entity.Goal, error)
	// Delete returns ErrGoalNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

// GoalUsecase implements the goal operations. With anonymous set, goals are
// shared by every caller and no ownership check is made.
type GoalUsecase struct {
	repo      GoalRepository
	anonymous bool
}

func NewGoalUsecase(repo GoalRepository, anonymous bool) *GoalUsecase {
	return &GoalUsecase{repo: repo, anonymous: anonymous}
}

func (u *GoalUsecase) List(ctx context.Context, callerID string) ([]entity.Goal, error) {
	var (
		goals []entity.Goal
		err   error
	)
	if u.anonymous {
		goals, err = u.repo.ListAll(ctx)
	} else {
		if callerID == "" {
			return nil, apperr.NotAuthorized(MsgUserNotFound)
		}
		goals, err = u.repo.ListByUser(ctx, callerID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to list goals", err)
	}
	if goals == nil {
		goals = []entity.Goal{}
	}
	return goals, nil
}

func (u *GoalUsecase) Create(ctx context.Context, callerID, text string) (*entity.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation(MsgTextRequired)
	}
	if !u.anonymous && callerID == "" {
		return nil, apperr.NotAuthorized(MsgUserNotFound)
	}

	goal := &entity.Goal{Text: text}
	if !u.anonymous {
		goal.UserID = callerID
	}
	if err := u.repo.Create(ctx, goal); err != nil {
		return nil, apperr.Internal("failed to create goal", err)
	}
	return goal, nil
}

func (u *GoalUsecase) Update(ctx context.Context, callerID, goalID, text string) (*entity.Goal, error) {
	if _, err := u.authorize(ctx, callerID, goalID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation(MsgTextRequired)
	}

	goal, err := u.repo.UpdateText(ctx, goalID, text)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			return nil, apperr.NotFound(MsgGoalNotFound)
		}
		return nil, apperr.Internal("failed to update goal", err)
	}
	return goal, nil
}

// Delete removes the goal and returns its id.
func (u *GoalUsecase) Delete(ctx context.Context, callerID, goalID string) (string, error) {
	if _, err := u.authorize(ctx, callerID, goalID); err != nil {
		return "", err
	}

	if err := u.repo.Delete(ctx, goalID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			return "", apperr.NotFound(MsgGoalNotFound)
		}
		return "", apperr.Internal("failed to delete goal", err)
	}
	return goalID, nil
}

// authorize loads the goal and checks, in order: existence, caller
// presence, ownership.
func (u *GoalUsecase) authorize(ctx context.Context, callerID, goalID string) (*entity.Goal, error) {
	goal, err := u.repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			return nil, apperr.NotFound(MsgGoalNotFound)
		}
		return nil, apperr.Internal("failed to load goal", err)
	}
	if u.anonymous {
		return goal, nil
	}
	if callerID == "" {
		return nil, apperr.NotAuthorized(MsgUserNotFound)
	}
	if !goal.OwnedBy(callerID) {
		return nil, apperr.NotAuthorized(MsgNotAuthorized)
	}
	return goal, nil
}
