package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal_backend/internal/feature/items/domain/entity"
	"goal_backend/internal/platform/apperr"
)

type mockItemRepository struct {
	ListFunc   func(ctx context.Context) ([]entity.Item, error)
	CreateFunc func(ctx context.Context, item *entity.Item) error
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockItemRepository) List(ctx context.Context) ([]entity.Item, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	item.ID = "i1"
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestItemUsecase_List(t *testing.T) {
	t.Parallel()

	items, err := NewItemUsecase(&mockItemRepository{}).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)

	uc := NewItemUsecase(&mockItemRepository{
		ListFunc: func(context.Context) ([]entity.Item, error) { return nil, errors.New("down") },
	})
	_, err = uc.List(context.Background())
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestItemUsecase_Create(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	uc := NewItemUsecase(&mockItemRepository{})
	uc.now = func() time.Time { return fixed }

	item, err := uc.Create(context.Background(), " Milk ")
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, fixed, item.Date)

	_, err = uc.Create(context.Background(), "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestItemUsecase_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		repoErr  error
		wantErr  bool
		wantKind apperr.Kind
	}{
		{name: "deleted"},
		{name: "missing", repoErr: ErrItemNotFound, wantErr: true, wantKind: apperr.KindNotFound},
		{name: "store failure", repoErr: errors.New("down"), wantErr: true, wantKind: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewItemUsecase(&mockItemRepository{
				DeleteFunc: func(context.Context, string) error { return tt.repoErr },
			})

			err := uc.Delete(context.Background(), "i1")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}
