// Package adapters provides the item repositories.
package adapters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal_backend/internal/feature/items/domain/entity"
	"goal_backend/internal/feature/items/usecase"
)

type itemGorm struct {
	db *gorm.DB
}

var _ usecase.ItemRepository = (*itemGorm)(nil)

func NewItemGorm(db *gorm.DB) *itemGorm {
	return &itemGorm{db: db}
}

func (r *itemGorm) List(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemGorm) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}
