// Package dto defines the JSON shapes of the items API.
package dto

import (
	"time"

	"goal_backend/internal/feature/items/domain/entity"
)

type ItemReq struct {
	Name string `json:"name"`
}

type ItemRes struct {
	ID   string    `json:"_id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type DeleteItemRes struct {
	Success bool `json:"success"`
}

func NewItemRes(i *entity.Item) ItemRes {
	return ItemRes{ID: i.ID, Name: i.Name, Date: i.Date}
}

func NewItemList(items []entity.Item) []ItemRes {
	out := make([]ItemRes, 0, len(items))
	for i := range items {
		out = append(out, NewItemRes(&items[i]))
	}
	return out
}
