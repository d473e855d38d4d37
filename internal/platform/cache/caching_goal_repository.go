// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"goal_backend/internal/feature/goals/domain/entity"
	"goal_backend/internal/feature/goals/usecase"
	"goal_backend/internal/platform/logutil"
)

// CachingGoalRepository decorates a GoalRepository with Redis caching of
// goal lists. Single goals are always read from the store so that
// ownership checks never see stale owners.
type CachingGoalRepository struct {
	inner     usecase.GoalRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.GoalRepository = (*CachingGoalRepository)(nil)

// NewCachingGoalRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "goals".
// A nil rdb disables caching.
func NewCachingGoalRepository(rdb *redis.Client, ttl time.Duration, inner usecase.GoalRepository, namespace string) *CachingGoalRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "goals"
	}
	return &CachingGoalRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingGoalRepository) ListByUser(ctx context.Context, userID string) ([]entity.Goal, error) {
	return c.cachedList(ctx, c.userKey(userID), func() ([]entity.Goal, error) {
		return c.inner.ListByUser(ctx, userID)
	})
}

func (c *CachingGoalRepository) ListAll(ctx context.Context) ([]entity.Goal, error) {
	return c.cachedList(ctx, c.allKey(), func() ([]entity.Goal, error) {
		return c.inner.ListAll(ctx)
	})
}

func (c *CachingGoalRepository) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	return c.inner.FindByID(ctx, id)
}

func (c *CachingGoalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	if err := c.inner.Create(ctx, goal); err != nil {
		return err
	}
	c.invalidate(ctx, goal.UserID)
	return nil
}

func (c *CachingGoalRepository) UpdateText(ctx context.Context, id, text string) (*entity.Goal, error) {
	goal, err := c.inner.UpdateText(ctx, id, text)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, goal.UserID)
	return goal, nil
}

func (c *CachingGoalRepository) Delete(ctx context.Context, id string) error {
	// The owner is needed to find the list key.
	var owner *string
	if c.rdb != nil {
		if g, err := c.inner.FindByID(ctx, id); err == nil {
			owner = &g.UserID
		}
	}

	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	if owner != nil {
		c.invalidate(ctx, *owner)
		return nil
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		logger := logutil.GetOrDefault(ctx)
		logger.Warn().Err(err).Msg("goal cache invalidation failed")
	}
	return nil
}

func (c *CachingGoalRepository) cachedList(ctx context.Context, key string, load func() ([]entity.Goal, error)) ([]entity.Goal, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Goal
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate drops the owner's list and the global list.
func (c *CachingGoalRepository) invalidate(ctx context.Context, userID string) {
	if c.rdb == nil {
		return
	}
	keys := []string{c.allKey()}
	if userID != "" {
		keys = append(keys, c.userKey(userID))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger := logutil.GetOrDefault(ctx)
		logger.Warn().Err(err).Strs("keys", keys).Msg("goal cache invalidation failed")
	}
}

func (c *CachingGoalRepository) userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", c.namespace, safe(userID))
}

func (c *CachingGoalRepository) allKey() string {
	return c.namespace + ":all"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingGoalRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
