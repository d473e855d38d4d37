// Package usecase implements the anonymous item list.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"goal_backend/internal/feature/items/domain/entity"
	"goal_backend/internal/platform/apperr"
)

var ErrItemNotFound = errors.New("item not found")

const (
	MsgNameRequired = "Please add a name field"
	MsgItemNotFound = "No item found"
)

type ItemRepository interface {
	// List returns every item, newest first.
	List(ctx context.Context) ([]entity.Item, error)
	Create(ctx context.Context, item *entity.Item) error
	// Delete returns ErrItemNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

type ItemUsecase struct {
	repo ItemRepository
	now  func() time.Time
}

func NewItemUsecase(repo ItemRepository) *ItemUsecase {
	return &ItemUsecase{repo: repo, now: time.Now}
}

func (u *ItemUsecase) List(ctx context.Context) ([]entity.Item, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list items", err)
	}
	if items == nil {
		items = []entity.Item{}
	}
	return items, nil
}

func (u *ItemUsecase) Create(ctx context.Context, name string) (*entity.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation(MsgNameRequired)
	}

	item := &entity.Item{Name: name, Date: u.now().UTC()}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, apperr.Internal("failed to create item", err)
	}
	return item, nil
}

func (u *ItemUsecase) Delete(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return apperr.NotFound(MsgItemNotFound)
		}
		return apperr.Internal("failed to delete item", err)
	}
	return nil
}
