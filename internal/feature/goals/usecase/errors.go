// Package usecase implements goal listing and the owner-gated mutations.
package usecase

import "errors"

// ErrGoalNotFound is returned by repositories when no goal has the given id.
var ErrGoalNotFound = errors.New("goal not found")

const (
	MsgTextRequired  = "Please add a text field"
	MsgGoalNotFound  = "Goal not found"
	MsgUserNotFound  = "User not found"
	MsgNotAuthorized = "User not authorized"
)
