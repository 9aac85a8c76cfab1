package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
)

type samplePayload struct {
	Email  string `json:"email" validate:"required,email"`
	Guests int    `json:"guests" validate:"required,gt=0"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","guests":2,"extra":true}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldMessages(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","guests":0}`))
	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message: %q", details["email"])
	}
	if _, found := details["guests"]; !found {
		t.Fatal("expected a message for guests")
	}
}

func TestParseQueryDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/?date=2026-09-12", nil)
	date, err := ParseQueryDate(r, "date")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if date != "2026-09-12" {
		t.Fatalf("unexpected date %q", date)
	}

	r = httptest.NewRequest("GET", "/?date=12-09-2026", nil)
	if _, err := ParseQueryDate(r, "date"); err == nil {
		t.Fatal("expected error for malformed date")
	}

	r = httptest.NewRequest("GET", "/", nil)
	if _, err := ParseQueryDate(r, "date"); err == nil {
		t.Fatal("expected error for missing date")
	}
}

func TestParseQueryTime(t *testing.T) {
	r := httptest.NewRequest("GET", "/?time=19:30", nil)
	value, err := ParseQueryTime(r, "time")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != "19:30" {
		t.Fatalf("unexpected time %q", value)
	}

	r = httptest.NewRequest("GET", "/?time=7pm", nil)
	if _, err := ParseQueryTime(r, "time"); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestParseQueryIntBounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=15", nil)
	value, err := ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if value != 15 {
		t.Fatalf("unexpected value %d", value)
	}

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil || value != 20 {
		t.Fatalf("expected default, got %d (%v)", value, err)
	}

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	if _, err := ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected error for out of range value")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello world  ", 0); got != "hello world" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := SanitizeString("be\x00st \tpizza", 0); got != "best pizza" {
		t.Fatalf("expected control characters stripped, got %q", got)
	}
	if got := SanitizeString("crème brûlée", 5); got != "crème" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
