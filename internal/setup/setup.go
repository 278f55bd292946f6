package setup

import (
	"github.com/readroom-dev/readroom/internal/config"
	"github.com/readroom-dev/readroom/internal/handler"
	"github.com/readroom-dev/readroom/internal/jwt"
	"github.com/readroom-dev/readroom/internal/middleware"
	"github.com/readroom-dev/readroom/internal/service"
	"github.com/readroom-dev/readroom/internal/storage/pg"
	"github.com/readroom-dev/readroom/internal/utils"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	forum := service.NewForum(storage, &utils.PostContentValidator{})

	h := handler.New(auth, forum, cfg)
	authMw := middleware.NewAuth(jwtService, storage)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: authMw,
		Config:         cfg,
	}, nil
}
