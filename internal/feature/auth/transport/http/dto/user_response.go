package dto

import "goal_backend/internal/feature/auth/domain/entity"

// UserRes is the public view of a user. The password digest is never exposed.
type UserRes struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewAuthRes(u *entity.User, token string) AuthRes {
	return AuthRes{ID: u.ID, Name: u.Name, Email: u.Email, Token: token}
}
