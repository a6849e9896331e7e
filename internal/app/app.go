// Package app wires configuration, Firebase clients, repositories and
// services into one object shared by the HTTP server and the CLI.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"playpal-backend-go/internal/config"
	"playpal-backend-go/internal/core"
	"playpal-backend-go/internal/db"
	"playpal-backend-go/internal/firebase"
	"playpal-backend-go/internal/push"
	"playpal-backend-go/pkg/cache"
)

// App holds the long-lived dependencies of a process.
type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	Clients       *firebase.Clients
	Cache         cache.Cache // nil when REDIS_URL is empty or unreachable
	Notifications core.NotificationService
	Verification  core.VerificationService
}

// NewLogger builds a development logger, or a production one in release mode.
func NewLogger(appConfig *config.Config) (*zap.Logger, error) {
	if appConfig != nil && appConfig.IsRelease() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// New initializes Firebase, the optional Redis cache and the services.
// An unreachable Redis is logged and the transition guard disabled.
func New(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*App, error) {
	if appConfig == nil {
		return nil, errors.New("app.New: appConfig cannot be nil")
	}

	clients, err := firebase.InitFirebase(ctx, appConfig, logger)
	if err != nil {
		return nil, err
	}

	a := &App{Config: appConfig, Logger: logger, Clients: clients}

	var guard core.TransitionGuard = core.NoopGuard{}
	if appConfig.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, appConfig.RedisURL, logger)
		if err != nil {
			logger.Warn("Redis unavailable, duplicate event suppression disabled", zap.Error(err))
		} else {
			a.Cache = redisCache
			guard = core.NewCacheGuard(redisCache, appConfig.TransitionTTL)
			logger.Info("Transition guard enabled", zap.Duration("ttl", appConfig.TransitionTTL))
		}
	} else {
		logger.Info("REDIS_URL not set, duplicate event suppression disabled")
	}

	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	notificationRepo := db.NewFirestoreNotificationRepository(clients.Firestore)
	gateway := push.NewFCMGateway(clients.Messaging, logger)

	a.Notifications = core.NewNotificationService(
		userRepo,
		notificationRepo,
		gateway,
		guard,
		appConfig.DeepLinkScheme,
		logger,
	)
	a.Verification = core.NewVerificationService(clients.Auth)

	logger.Info("Core services initialized successfully.")
	return a, nil
}

// Close releases the cache and Firebase connections.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	errs = append(errs, a.Clients.Close())
	return errors.Join(errs...)
}
