package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gotoresto/gotoresto-backend/internal/loyalty"
	"github.com/gotoresto/gotoresto-backend/pkg/pagination"
)

type testLoyaltyService struct {
	balanceFn func(ctx context.Context, userID uuid.UUID) (loyalty.BalanceDTO, error)
	redeemFn  func(ctx context.Context, userID uuid.UUID, dto loyalty.RedeemDTO) (loyalty.BalanceDTO, error)
	historyFn func(ctx context.Context, userID uuid.UUID, params pagination.Params) (loyalty.HistoryPageDTO, error)
}

func (s *testLoyaltyService) Balance(ctx context.Context, userID uuid.UUID) (loyalty.BalanceDTO, error) {
	if s.balanceFn != nil {
		return s.balanceFn(ctx, userID)
	}
	return loyalty.BalanceDTO{}, nil
}

func (s *testLoyaltyService) Redeem(ctx context.Context, userID uuid.UUID, dto loyalty.RedeemDTO) (loyalty.BalanceDTO, error) {
	if s.redeemFn != nil {
		return s.redeemFn(ctx, userID, dto)
	}
	return loyalty.BalanceDTO{}, nil
}

func (s *testLoyaltyService) History(ctx context.Context, userID uuid.UUID, params pagination.Params) (loyalty.HistoryPageDTO, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, userID, params)
	}
	return loyalty.HistoryPageDTO{}, nil
}

func (s *testLoyaltyService) AwardBookingPoints(ctx context.Context, tx *gorm.DB, userID, bookingID uuid.UUID) error {
	return nil
}

func (s *testLoyaltyService) AwardReviewPoints(ctx context.Context, tx *gorm.DB, userID, reviewID uuid.UUID) error {
	return nil
}

func TestRedeemLoyaltyPointsSuccess(t *testing.T) {
	userID := uuid.New()
	var captured loyalty.RedeemDTO
	svc := &testLoyaltyService{
		redeemFn: func(ctx context.Context, uid uuid.UUID, dto loyalty.RedeemDTO) (loyalty.BalanceDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			captured = dto
			return loyalty.BalanceDTO{UserID: uid, Points: 5}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loyalty/redeem", strings.NewReader(`{"points":20}`))
	req = authenticated(req, userID)
	resp := httptest.NewRecorder()
	RedeemLoyaltyPoints(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Points != 20 {
		t.Fatalf("expected 20 points got %d", captured.Points)
	}
}

func TestRedeemLoyaltyPointsRejectsNonPositive(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loyalty/redeem", strings.NewReader(`{"points":0}`))
	req = authenticated(req, uuid.New())
	resp := httptest.NewRecorder()
	RedeemLoyaltyPoints(&testLoyaltyService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetLoyaltyHistoryForwardsCursor(t *testing.T) {
	var captured pagination.Params
	svc := &testLoyaltyService{
		historyFn: func(ctx context.Context, uid uuid.UUID, params pagination.Params) (loyalty.HistoryPageDTO, error) {
			captured = params
			return loyalty.HistoryPageDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loyalty/history?limit=10&cursor=xyz", nil)
	req = authenticated(req, uuid.New())
	resp := httptest.NewRecorder()
	GetLoyaltyHistory(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.Limit != 10 || captured.Cursor != "xyz" {
		t.Fatalf("unexpected params %+v", captured)
	}
}
