package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", sessionCookieName)
	return nil
}

func TestSessionRoundtrip(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)
	c := sessionCookie(t, rec)
	if !c.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	uid, ok := ParseSession(req)
	if !ok {
		t.Fatalf("expected valid session")
	}
	if uid != 42 {
		t.Fatalf("expected uid 42 got %d", uid)
	}
}

func TestParseSessionRejectsTampered(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 7)
	c := sessionCookie(t, rec)
	c.Value = c.Value[:len(c.Value)-2] + "xx"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if _, ok := ParseSession(req); ok {
		t.Fatalf("tampered token must not parse")
	}
}

func TestParseSessionRejectsExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(7, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: signed})
	if _, ok := ParseSession(req); ok {
		t.Fatalf("expired token must not parse")
	}
}

func TestParseSessionRejectsOtherSecret(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: signed})
	if _, ok := ParseSession(req); ok {
		t.Fatalf("token signed with a different key must not parse")
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSession(rec)
	c := sessionCookie(t, rec)
	if c.Value != "" {
		t.Fatalf("expected empty cookie value got %q", c.Value)
	}
	if c.Expires.After(time.Now()) {
		t.Fatalf("expected cookie expiry in the past")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %q", loc)
	}
}

func TestRequireAuthJSONGets401(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/unread_count", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRequireAuthClearsStaleSession(t *testing.T) {
	SetUserVerifier(func(_ context.Context, _ uint) bool { return false })
	t.Cleanup(func() { SetUserVerifier(nil) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	req = req.WithContext(WithUserID(req.Context(), 99))
	rec := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", rec.Code)
	}
	cleared := sessionCookie(t, rec)
	if cleared.Value != "" {
		t.Fatalf("stale session cookie should be cleared")
	}
}
