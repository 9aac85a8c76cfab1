package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeBookingCounter struct {
	byUser       int64
	byRestaurant int64
}

func (f *fakeBookingCounter) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.byUser, nil
}

func (f *fakeBookingCounter) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	return f.byRestaurant, nil
}

type fakeReviewCounter struct {
	byUser      int64
	ratingCount int64
	ratingSum   int64
}

func (f *fakeReviewCounter) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.byUser, nil
}

func (f *fakeReviewCounter) RatingStats(ctx context.Context, restaurantID uuid.UUID) (int64, int64, error) {
	return f.ratingCount, f.ratingSum, nil
}

type fakeFollowCounter struct {
	followers int64
	following int64
}

func (f *fakeFollowCounter) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.followers, nil
}

func (f *fakeFollowCounter) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.following, nil
}

type fakeLoyaltyReader struct {
	points  int
	missing bool
}

func (f *fakeLoyaltyReader) Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	if f.missing {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.LoyaltyAccount{UserID: userID, Points: f.points}, nil
}

type fakeRestaurantFinder struct {
	missing bool
}

func (f *fakeRestaurantFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if f.missing {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Restaurant{ID: id}, nil
}

func newAnalyticsService(t *testing.T, bookings *fakeBookingCounter, reviews *fakeReviewCounter, social *fakeFollowCounter, loyalty *fakeLoyaltyReader, restaurants *fakeRestaurantFinder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		BookingRepo:    bookings,
		ReviewRepo:     reviews,
		SocialRepo:     social,
		LoyaltyRepo:    loyalty,
		RestaurantRepo: restaurants,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestUserStatsAggregates(t *testing.T) {
	svc := newAnalyticsService(t,
		&fakeBookingCounter{byUser: 4},
		&fakeReviewCounter{byUser: 2},
		&fakeFollowCounter{followers: 7, following: 3},
		&fakeLoyaltyReader{points: 55},
		&fakeRestaurantFinder{},
	)

	stats, err := svc.UserStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if stats.Bookings != 4 || stats.Reviews != 2 || stats.Followers != 7 || stats.Following != 3 || stats.Points != 55 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestUserStatsMissingLoyaltyAccountMeansZeroPoints(t *testing.T) {
	svc := newAnalyticsService(t,
		&fakeBookingCounter{},
		&fakeReviewCounter{},
		&fakeFollowCounter{},
		&fakeLoyaltyReader{missing: true},
		&fakeRestaurantFinder{},
	)

	stats, err := svc.UserStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if stats.Points != 0 {
		t.Fatalf("expected zero points, got %d", stats.Points)
	}
}

func TestRestaurantStatsAverageRounds(t *testing.T) {
	svc := newAnalyticsService(t,
		&fakeBookingCounter{byRestaurant: 12},
		&fakeReviewCounter{ratingCount: 3, ratingSum: 10},
		&fakeFollowCounter{},
		&fakeLoyaltyReader{},
		&fakeRestaurantFinder{},
	)

	stats, err := svc.RestaurantStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("restaurant stats: %v", err)
	}
	if stats.Bookings != 12 {
		t.Fatalf("unexpected booking count %d", stats.Bookings)
	}
	if stats.Rating.Count != 3 || stats.Rating.Average.String() != "3.33" {
		t.Fatalf("unexpected rating %+v", stats.Rating)
	}
}

func TestRestaurantStatsUnknownRestaurant(t *testing.T) {
	svc := newAnalyticsService(t,
		&fakeBookingCounter{},
		&fakeReviewCounter{},
		&fakeFollowCounter{},
		&fakeLoyaltyReader{},
		&fakeRestaurantFinder{missing: true},
	)

	_, err := svc.RestaurantStats(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}
