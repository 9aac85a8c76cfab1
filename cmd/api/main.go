package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gotoresto/gotoresto-backend/api/routes"
	"github.com/gotoresto/gotoresto-backend/internal/activity"
	"github.com/gotoresto/gotoresto-backend/internal/analytics"
	"github.com/gotoresto/gotoresto-backend/internal/auth"
	"github.com/gotoresto/gotoresto-backend/internal/bookings"
	"github.com/gotoresto/gotoresto-backend/internal/loyalty"
	"github.com/gotoresto/gotoresto-backend/internal/notifications"
	"github.com/gotoresto/gotoresto-backend/internal/restaurants"
	"github.com/gotoresto/gotoresto-backend/internal/reviews"
	"github.com/gotoresto/gotoresto-backend/internal/social"
	"github.com/gotoresto/gotoresto-backend/internal/tables"
	"github.com/gotoresto/gotoresto-backend/internal/users"
	"github.com/gotoresto/gotoresto-backend/pkg/auth/session"
	"github.com/gotoresto/gotoresto-backend/pkg/config"
	"github.com/gotoresto/gotoresto-backend/pkg/db"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
	"github.com/gotoresto/gotoresto-backend/pkg/metrics"
	"github.com/gotoresto/gotoresto-backend/pkg/migrate"
	"github.com/gotoresto/gotoresto-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	restaurantRepo := restaurants.NewRepository(dbClient.DB())
	tableRepo := tables.NewRepository(dbClient.DB())
	bookingRepo := bookings.NewRepository(dbClient.DB())
	reviewRepo := reviews.NewRepository(dbClient.DB())
	socialRepo := social.NewRepository(dbClient.DB())
	loyaltyRepo := loyalty.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())
	activityRepo := activity.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{UserRepo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	restaurantsService, err := restaurants.NewService(restaurants.ServiceParams{RestaurantRepo: restaurantRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create restaurants service", err)
		os.Exit(1)
	}

	tablesService, err := tables.NewService(tables.ServiceParams{
		TableRepo:      tableRepo,
		RestaurantRepo: restaurantRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tables service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.ServiceParams{NotificationRepo: notificationRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	loyaltyService, err := loyalty.NewService(loyalty.ServiceParams{
		LoyaltyRepo: loyaltyRepo,
		Activity:    activityRepo,
		Tx:          dbClient,
		Config:      cfg.Loyalty,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create loyalty service", err)
		os.Exit(1)
	}

	bookingsService, err := bookings.NewService(bookings.ServiceParams{
		BookingRepo:    bookingRepo,
		TableRepo:      tableRepo,
		RestaurantRepo: restaurantRepo,
		Tx:             dbClient,
		Loyalty:        loyaltyService,
		Notifier:       notificationsService,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo:     reviewRepo,
		RestaurantRepo: restaurantRepo,
		Tx:             dbClient,
		Loyalty:        loyaltyService,
		Activity:       activityRepo,
		Notifier:       notificationsService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	socialService, err := social.NewService(social.ServiceParams{
		SocialRepo:     socialRepo,
		UserRepo:       userRepo,
		RestaurantRepo: restaurantRepo,
		BookingRepo:    bookingRepo,
		ReviewRepo:     reviewRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create social service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		BookingRepo:    bookingRepo,
		ReviewRepo:     reviewRepo,
		SocialRepo:     socialRepo,
		LoyaltyRepo:    loyaltyRepo,
		RestaurantRepo: restaurantRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		SessionVerifier: sessionManager,
		MetricsRegistry: registry,
		HTTPMetrics:     httpMetrics,

		AuthService:          authService,
		UsersService:         usersService,
		RestaurantsService:   restaurantsService,
		TablesService:        tablesService,
		BookingsService:      bookingsService,
		ReviewsService:       reviewsService,
		LoyaltyService:       loyaltyService,
		NotificationsService: notificationsService,
		SocialService:        socialService,
		AnalyticsService:     analyticsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}
