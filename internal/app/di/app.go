package di

import (
	"goal_backend/internal/config"
	authhandler "goal_backend/internal/feature/auth/transport/handler"
	authusecase "goal_backend/internal/feature/auth/usecase"
	goalhandler "goal_backend/internal/feature/goals/transport/handler"
	goalusecase "goal_backend/internal/feature/goals/usecase"
	itemhandler "goal_backend/internal/feature/items/transport/handler"
	itemusecase "goal_backend/internal/feature/items/usecase"
	"goal_backend/internal/platform/hash"
	"goal_backend/internal/platform/http/handler"
	jwtmw "goal_backend/internal/platform/jwt"
	"goal_backend/internal/shared/ratelimiter"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth   *authhandler.AuthHandler
	Goals  *goalhandler.GoalHandler
	Items  *itemhandler.ItemHandler
	Health *handler.HealthHandler

	Tokens      jwtmw.TokenParser
	Identities  jwtmw.IdentityResolver
	AuthLimiter *ratelimiter.RateLimiter
}

// NewHandlers builds usecases and handlers on top of the given stores.
func NewHandlers(cfg *config.Config, s *Stores) *Handlers {
	tokens := jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := hash.New(cfg.Auth.BcryptCost)

	authUC := authusecase.NewAuthUsecase(s.Users, hasher, tokens)
	goalUC := goalusecase.NewGoalUsecase(s.Goals, cfg.Features.GoalsAnonymous)
	itemUC := itemusecase.NewItemUsecase(s.Items)

	return &Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Goals:       goalhandler.NewGoalHandler(goalUC),
		Items:       itemhandler.NewItemHandler(itemUC),
		Health:      handler.NewHealthHandler(s.Checks),
		Tokens:      tokens,
		Identities:  authUC,
		AuthLimiter: ratelimiter.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateWindow),
	}
}
