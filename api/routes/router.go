package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gotoresto/gotoresto-backend/api/controllers"
	"github.com/gotoresto/gotoresto-backend/api/middleware"
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
	"github.com/gotoresto/gotoresto-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionVerifier session.AccessSessionChecker
	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics

	AuthService          auth.Service
	UsersService         users.Service
	RestaurantsService   restaurants.Service
	TablesService        tables.Service
	BookingsService      bookings.Service
	ReviewsService       reviews.Service
	LoyaltyService       loyalty.Service
	NotificationsService notifications.Service
	SocialService        social.Service
	AnalyticsService     analytics.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(p.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	if p.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, p.Redis, logg),
			middleware.Idempotency(p.Redis, logg),
		).Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
	})

	// Public discovery surface.
	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Get("/", controllers.SearchRestaurants(p.RestaurantsService, logg))
		r.Route("/{restaurantID}", func(r chi.Router) {
			r.Get("/", controllers.GetRestaurant(p.RestaurantsService, logg))
			r.Get("/tables", controllers.ListRestaurantTables(p.TablesService, logg))
			r.Get("/availability", controllers.GetAvailability(p.BookingsService, logg))
			r.Get("/reviews", controllers.ListRestaurantReviews(p.ReviewsService, logg))
			r.Get("/stats", controllers.GetRestaurantStats(p.AnalyticsService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, p.SessionVerifier, logg))
				r.Use(middleware.Idempotency(p.Redis, logg))
				r.Post("/reviews", controllers.CreateReview(p.ReviewsService, logg))
				r.Post("/favorite", controllers.AddFavorite(p.SocialService, logg))
				r.Delete("/favorite", controllers.RemoveFavorite(p.SocialService, logg))
			})
		})
	})

	// Public profile reads live outside the session-guarded group.
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionVerifier, logg))
			r.Use(middleware.Idempotency(p.Redis, logg))
			r.Get("/me", controllers.GetMe(p.UsersService, logg))
			r.Put("/me", controllers.UpdateMe(p.UsersService, logg))
			r.Get("/suggestions", controllers.GetSuggestions(p.SocialService, logg))
		})

		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", controllers.GetUserProfile(p.UsersService, logg))
			r.Get("/stats", controllers.GetUserStats(p.AnalyticsService, logg))
			r.Get("/followers", controllers.ListFollowers(p.SocialService, logg))
			r.Get("/following", controllers.ListFollowing(p.SocialService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, p.SessionVerifier, logg))
				r.Use(middleware.Idempotency(p.Redis, logg))
				r.Post("/follow", controllers.FollowUser(p.SocialService, logg))
				r.Delete("/follow", controllers.UnfollowUser(p.SocialService, logg))
			})
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionVerifier, logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.ListMyBookings(p.BookingsService, logg))
			r.Post("/", controllers.CreateBooking(p.BookingsService, logg))
		})

		r.Route("/reviews/{reviewID}", func(r chi.Router) {
			r.Put("/", controllers.UpdateReview(p.ReviewsService, logg))
			r.Delete("/", controllers.DeleteReview(p.ReviewsService, logg))
			r.Post("/like", controllers.LikeReview(p.ReviewsService, logg))
		})

		r.Route("/loyalty", func(r chi.Router) {
			r.Get("/", controllers.GetLoyaltyBalance(p.LoyaltyService, logg))
			r.Post("/redeem", controllers.RedeemLoyaltyPoints(p.LoyaltyService, logg))
			r.Get("/history", controllers.GetLoyaltyHistory(p.LoyaltyService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(p.NotificationsService, logg))
			r.Post("/send", controllers.SendNotification(p.NotificationsService, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(p.NotificationsService, logg))
		})

		r.Get("/feed", controllers.GetFeed(p.SocialService, logg))
		r.Get("/favorites", controllers.ListFavorites(p.SocialService, logg))
	})

	return r
}
