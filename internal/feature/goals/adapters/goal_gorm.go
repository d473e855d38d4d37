package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goal_backend/internal/feature/goals/domain/entity"
	"goal_backend/internal/feature/goals/usecase"
)

type goalGorm struct {
	db *gorm.DB
}

var _ usecase.GoalRepository = (*goalGorm)(nil)

func NewGoalGorm(db *gorm.DB) *goalGorm {
	return &goalGorm{db: db}
}

func (r *goalGorm) ListByUser(ctx context.Context, userID string) ([]entity.Goal, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *goalGorm) ListAll(ctx context.Context) ([]entity.Goal, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *goalGorm) list(q *gorm.DB) ([]entity.Goal, error) {
	var models []GoalModel
	if err := q.Order("created_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	goals := make([]entity.Goal, 0, len(models))
	for i := range models {
		goals = append(goals, models[i].ToEntity())
	}
	return goals, nil
}

func (r *goalGorm) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	var m GoalModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGoalNotFound
		}
		return nil, err
	}
	g := m.ToEntity()
	return &g, nil
}

func (r *goalGorm) Create(ctx context.Context, g *entity.Goal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	m := GoalModelFromEntity(g)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	g.CreatedAt, g.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *goalGorm) UpdateText(ctx context.Context, id, text string) (*entity.Goal, error) {
	res := r.db.WithContext(ctx).Model(&GoalModel{}).Where("id = ?", id).Update("text", text)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrGoalNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *goalGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GoalModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrGoalNotFound
	}
	return nil
}
