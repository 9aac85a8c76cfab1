package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

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
	pkgauth "github.com/gotoresto/gotoresto-backend/pkg/auth"
	"github.com/gotoresto/gotoresto-backend/pkg/auth/session"
	"github.com/gotoresto/gotoresto-backend/pkg/config"
	"github.com/gotoresto/gotoresto-backend/pkg/logger"
	"github.com/gotoresto/gotoresto-backend/pkg/pagination"
	"github.com/gotoresto/gotoresto-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionVerifier struct {
	ok bool
}

func (s stubSessionVerifier) HasSession(context.Context, string) (bool, error) {
	return s.ok, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Refresh(context.Context, auth.RefreshRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Logout(context.Context, string) error { return nil }

type stubUsersService struct{}

func (stubUsersService) Me(context.Context, uuid.UUID) (users.UserDTO, error) {
	return users.UserDTO{}, nil
}

func (stubUsersService) UpdateMe(context.Context, uuid.UUID, users.UpdateUserDTO) (users.UserDTO, error) {
	return users.UserDTO{}, nil
}

func (stubUsersService) PublicProfile(context.Context, uuid.UUID) (users.PublicUserDTO, error) {
	return users.PublicUserDTO{}, nil
}

type stubRestaurantsService struct{}

func (stubRestaurantsService) Search(context.Context, restaurants.SearchParams) ([]restaurants.RestaurantDTO, error) {
	return []restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) Get(context.Context, uuid.UUID) (restaurants.RestaurantDTO, error) {
	return restaurants.RestaurantDTO{}, nil
}

type stubTablesService struct{}

func (stubTablesService) ListByRestaurant(context.Context, uuid.UUID) ([]tables.TableDTO, error) {
	return []tables.TableDTO{}, nil
}

type stubBookingsService struct{}

func (stubBookingsService) Availability(context.Context, bookings.Slot) ([]tables.TableDTO, error) {
	return []tables.TableDTO{}, nil
}

func (stubBookingsService) Create(context.Context, uuid.UUID, bookings.CreateBookingDTO) (bookings.BookingDTO, error) {
	return bookings.BookingDTO{}, nil
}

func (stubBookingsService) ListMine(context.Context, uuid.UUID) ([]bookings.BookingDTO, error) {
	return []bookings.BookingDTO{}, nil
}

type stubReviewsService struct{}

func (stubReviewsService) Create(context.Context, uuid.UUID, reviews.CreateReviewDTO) (reviews.ReviewDTO, error) {
	return reviews.ReviewDTO{}, nil
}

func (stubReviewsService) ListByRestaurant(context.Context, uuid.UUID) ([]reviews.ReviewDTO, error) {
	return []reviews.ReviewDTO{}, nil
}

func (stubReviewsService) Update(context.Context, uuid.UUID, uuid.UUID, reviews.UpdateReviewDTO) (reviews.ReviewDTO, error) {
	return reviews.ReviewDTO{}, nil
}

func (stubReviewsService) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubReviewsService) Like(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubLoyaltyService struct{}

func (stubLoyaltyService) Balance(context.Context, uuid.UUID) (loyalty.BalanceDTO, error) {
	return loyalty.BalanceDTO{}, nil
}

func (stubLoyaltyService) Redeem(context.Context, uuid.UUID, loyalty.RedeemDTO) (loyalty.BalanceDTO, error) {
	return loyalty.BalanceDTO{}, nil
}

func (stubLoyaltyService) History(context.Context, uuid.UUID, pagination.Params) (loyalty.HistoryPageDTO, error) {
	return loyalty.HistoryPageDTO{}, nil
}

func (stubLoyaltyService) AwardBookingPoints(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) error {
	return nil
}

func (stubLoyaltyService) AwardReviewPoints(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) Send(context.Context, uuid.UUID, string) error { return nil }

func (stubNotificationsService) List(context.Context, uuid.UUID, pagination.Params) (notifications.PageDTO, error) {
	return notifications.PageDTO{}, nil
}

func (stubNotificationsService) MarkRead(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubSocialService struct{}

func (stubSocialService) Follow(context.Context, uuid.UUID, uuid.UUID) error   { return nil }
func (stubSocialService) Unfollow(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubSocialService) Followers(context.Context, uuid.UUID) (social.FollowListDTO, error) {
	return social.FollowListDTO{}, nil
}

func (stubSocialService) Following(context.Context, uuid.UUID) (social.FollowListDTO, error) {
	return social.FollowListDTO{}, nil
}

func (stubSocialService) Feed(context.Context, uuid.UUID) (social.FeedDTO, error) {
	return social.FeedDTO{}, nil
}

func (stubSocialService) Suggestions(context.Context, uuid.UUID) (social.FollowListDTO, error) {
	return social.FollowListDTO{}, nil
}

func (stubSocialService) AddFavorite(context.Context, uuid.UUID, uuid.UUID) error    { return nil }
func (stubSocialService) RemoveFavorite(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubSocialService) ListFavorites(context.Context, uuid.UUID) (social.FavoritesDTO, error) {
	return social.FavoritesDTO{}, nil
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) UserStats(context.Context, uuid.UUID) (analytics.UserStatsDTO, error) {
	return analytics.UserStatsDTO{}, nil
}

func (stubAnalyticsService) RestaurantStats(context.Context, uuid.UUID) (analytics.RestaurantStatsDTO, error) {
	return analytics.RestaurantStatsDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "gotoresto",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, verifier session.AccessSessionChecker) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		Redis:           (*redis.Client)(nil),
		SessionVerifier: verifier,

		AuthService:          stubAuthService{},
		UsersService:         stubUsersService{},
		RestaurantsService:   stubRestaurantsService{},
		TablesService:        stubTablesService{},
		BookingsService:      stubBookingsService{},
		ReviewsService:       stubReviewsService{},
		LoyaltyService:       stubLoyaltyService{},
		NotificationsService: stubNotificationsService{},
		SocialService:        stubSocialService{},
		AnalyticsService:     stubAnalyticsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "diner@example.com",
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if env := resp.Header().Get("X-GotoResto-Env"); env != "test" {
		t.Fatalf("unexpected env header %q", env)
	}
}

func TestProtectedGroupRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProtectedGroupRejectsRevokedSession(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: false})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestAvailabilityIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})

	target := "/api/v1/restaurants/" + uuid.NewString() + "/availability?date=2026-09-12&time=19:00"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAvailabilityRejectsMalformedDate(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})

	target := "/api/v1/restaurants/" + uuid.NewString() + "/availability?date=12-09-2026&time=19:00"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRestaurantSearchIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants?q=sushi", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestPublicProfileNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBookingCreateRequiresIdempotencyKey(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: true})

	body := strings.NewReader(`{"restaurant_id":"` + uuid.NewString() + `","date":"2026-09-12","time":"19:00","guests":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestIdempotentWritesRequireKeyWhenMounted(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: true})
	token := buildToken(t, cfg)

	paths := []struct {
		name string
		path string
	}{
		{"loyalty redeem", "/api/v1/loyalty/redeem"},
		{"review like", "/api/v1/reviews/" + uuid.NewString() + "/like"},
		{"notification read", "/api/v1/notifications/" + uuid.NewString() + "/read"},
		{"review create", "/api/v1/restaurants/" + uuid.NewString() + "/reviews"},
	}

	for _, tt := range paths {
		req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 without idempotency key got %d: %s", tt.name, resp.Code, resp.Body.String())
		}
	}
}
