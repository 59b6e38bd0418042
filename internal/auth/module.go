package auth

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dmartinez/todo-api/internal/config"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide repository
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			// Provide service
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository) *Service {
					return NewService(&config.Auth, log, repo)
				},
			),
			// Provide handler
			fx.Annotate(
				func(svc *Service, log *zap.Logger) *Handler {
					return NewHandler(svc, log)
				},
			),
			// Provide middleware
			fx.Annotate(
				func(config *config.AppConfig) *AuthMiddleware {
					return NewAuthMiddleware(&config.Auth)
				},
			),
		),
		fx.Invoke(registerBootstrap),
	)
}

func registerBootstrap(
	lifecycle fx.Lifecycle,
	repo Repository,
	svc *Service,
	config *config.AppConfig,
	log *zap.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return Bootstrap(repo, svc, &config.Auth, log)
		},
	})
}
