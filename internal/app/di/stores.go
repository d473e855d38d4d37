// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"goal_backend/internal/config"
	authadapters "goal_backend/internal/feature/auth/adapters"
	authentity "goal_backend/internal/feature/auth/domain/entity"
	authusecase "goal_backend/internal/feature/auth/usecase"
	goaladapters "goal_backend/internal/feature/goals/adapters"
	goalusecase "goal_backend/internal/feature/goals/usecase"
	itemadapters "goal_backend/internal/feature/items/adapters"
	itementity "goal_backend/internal/feature/items/domain/entity"
	itemusecase "goal_backend/internal/feature/items/usecase"
	"goal_backend/internal/platform/db"
	"goal_backend/internal/platform/http/handler"
	platformmongo "goal_backend/internal/platform/mongo"
)

// Stores holds the repositories of the configured backing store.
type Stores struct {
	Users authusecase.UserRepository
	Goals goalusecase.GoalRepository
	Items itemusecase.ItemRepository

	// Checks are reported by /healthz.
	Checks map[string]handler.Check

	migrate func(ctx context.Context) error
	closers []func() error
}

// OpenStores connects to the store selected by cfg.Database.Driver.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.Database.Driver == config.DriverMongo {
		client, err := platformmongo.NewClient(ctx, cfg.Mongo, cfg.Database.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return NewMongoStores(client, cfg.Mongo.DBName), nil
	}

	gdb, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return NewGormStores(gdb, cfg.Database.Driver), nil
}

// NewGormStores wires the relational repositories onto gdb.
func NewGormStores(gdb *gorm.DB, driver string) *Stores {
	return &Stores{
		Users: authadapters.NewUserGorm(gdb),
		Goals: goaladapters.NewGoalGorm(gdb),
		Items: itemadapters.NewItemGorm(gdb),
		Checks: map[string]handler.Check{
			"database": func(ctx context.Context) error { return db.Ping(ctx, gdb) },
		},
		migrate: func(ctx context.Context) error {
			return db.Migrate(ctx, gdb, driver, Models()...)
		},
		closers: []func() error{func() error { return db.Close(gdb) }},
	}
}

// NewMongoStores wires the document repositories onto the named database.
func NewMongoStores(client *mongo.Client, dbName string) *Stores {
	database := client.Database(dbName)
	users := authadapters.NewUserMongo(database)
	goals := goaladapters.NewGoalMongo(database)
	items := itemadapters.NewItemMongo(database)

	return &Stores{
		Users: users,
		Goals: goals,
		Items: items,
		Checks: map[string]handler.Check{
			"database": func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		migrate: func(ctx context.Context) error {
			if err := users.EnsureIndexes(ctx); err != nil {
				return err
			}
			if err := goals.EnsureIndexes(ctx); err != nil {
				return err
			}
			return items.EnsureIndexes(ctx)
		},
		closers: []func() error{func() error { return client.Disconnect(context.Background()) }},
	}
}

// Models lists the gorm models of every relational table.
func Models() []any {
	return []any{&authentity.User{}, &goaladapters.GoalModel{}, &itementity.Item{}}
}

// Migrate brings the store schema (or indexes) up to date.
func (s *Stores) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases every connection the stores opened, last opened first.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Stores) onClose(fn func() error) {
	s.closers = append(s.closers, fn)
}
