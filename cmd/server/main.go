package main

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/api"
	v1 "github.com/courseforge/courseforge/internal/api/v1"
	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/gateway"
	"github.com/courseforge/courseforge/internal/httpclient"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/mongodb"
	"github.com/courseforge/courseforge/internal/notify"
	"github.com/courseforge/courseforge/internal/repository"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			provideCache,

			// MongoDB
			provideMongoDB,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Payment gateways
			provideGatewayFactory,

			// Notifications
			provideNotifier,

			// Repositories
			repository.NewUserRepository,
			repository.NewAdminRepository,
			repository.NewPaymentRepository,
			repository.NewRefundRepository,
			repository.NewBillingOperationRepository,
			repository.NewCourseRepository,

			// Services
			service.NewServiceParams,
			service.NewEntitlementService,
			service.NewSubscriptionService,
			service.NewOnboardingService,
			service.NewBillingService,
			service.NewDashboardService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideCache(cfg *config.Configuration) cache.Cache {
	return cache.NewInMemoryCache(cfg.Cache.Enabled)
}

func provideMongoDB(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*mongodb.DB, error) {
	db, err := mongodb.NewDB(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})
	return db, nil
}

func provideGatewayFactory(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) gateway.ProviderFactory {
	return gateway.NewFactory(cfg, client, log)
}

func provideNotifier(log *logger.Logger) notify.Notifier {
	return notify.NewLogNotifier(log)
}

func provideHandlers(
	logger *logger.Logger,
	subscriptionService service.SubscriptionService,
	onboardingService service.OnboardingService,
	billingService service.BillingService,
	dashboardService service.DashboardService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(logger),
		Auth:         v1.NewAuthHandler(onboardingService, logger),
		Subscription: v1.NewSubscriptionHandler(subscriptionService, logger),
		Billing:      v1.NewBillingHandler(billingService, logger),
		Refund:       v1.NewRefundHandler(billingService, logger),
		Admin:        v1.NewAdminHandler(onboardingService, logger),
		Dashboard:    v1.NewDashboardHandler(dashboardService, logger),
		User:         v1.NewUserHandler(onboardingService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return nil
		},
	})
}
