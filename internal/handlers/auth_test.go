package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dsmorokov/teamup/internal/models"
	"github.com/dsmorokov/teamup/internal/services"
)

func registerForm(handle, email, password, confirm string) url.Values {
	return url.Values{
		"handle":           {handle},
		"email":            {email},
		"password":         {password},
		"password_confirm": {confirm},
	}
}

func TestRegisterCreatesAccountAndSession(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := formReq("/register", registerForm("neo_gamer", "neo@test.gg", "secret123", "secret123"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/profile/neo_gamer" {
		t.Fatalf("expected profile redirect, got %q", loc)
	}
	if c := sessionCookie(t, w); c == nil || c.Value == "" {
		t.Fatalf("expected a session cookie to be set")
	}

	var u models.User
	if err := db.Where("handle = ?", "neo_gamer").First(&u).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if !u.Active || u.Description != models.DefaultDescription {
		t.Fatalf("unexpected defaults: active=%v desc=%q", u.Active, u.Description)
	}
}

func TestRegisterRerendersOnValidationError(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := formReq("/register", registerForm("neo_gamer", "neo@test.gg", "123", "123"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected re-render got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Password must be at least 6 characters") {
		t.Fatalf("expected password message in body")
	}
	if !strings.Contains(body, `value="neo_gamer"`) {
		t.Fatalf("expected handle echoed back into the form")
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("no account should exist, got %d", count)
	}
}

func TestRegisterDuplicateHandle(t *testing.T) {
	db := setupHandlerTestDB(t)
	seedAccount(t, db, "taken_one")
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := formReq("/register", registerForm("taken_one", "new@test.gg", "secret123", "secret123"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "This handle is already taken") {
		t.Fatalf("expected handle conflict message, code=%d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupHandlerTestDB(t)
	seedAccount(t, db, "steel_nerves")
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := formReq("/login", url.Values{"handle": {"steel_nerves"}, "password": {"wrong"}})
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Wrong handle or password") {
		t.Fatalf("expected credentials message, code=%d", w.Code)
	}
	if c := sessionCookie(t, w); c != nil && c.Value != "" {
		t.Fatalf("no session cookie on failed login")
	}
}

func TestLoginSuccess(t *testing.T) {
	db := setupHandlerTestDB(t)
	seedAccount(t, db, "steel_nerves")
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := formReq("/login", url.Values{"handle": {"steel_nerves"}, "password": {"secret123"}})
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/profile/steel_nerves" {
		t.Fatalf("expected redirect to profile, code=%d loc=%q", w.Code, w.Header().Get("Location"))
	}
	if c := sessionCookie(t, w); c == nil || c.Value == "" {
		t.Fatalf("expected a session cookie")
	}
}

func TestLoginFormRedirectsWhenAlreadySignedIn(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "steel_nerves")
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := asUser(httptest.NewRequest(http.MethodGet, "/login", nil), u.ID)
	w := httptest.NewRecorder()
	h.LoginForm(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/profile/steel_nerves" {
		t.Fatalf("expected redirect for signed-in visitor, code=%d loc=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewAuthHandler(services.NewUserService(db), testLog)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, code=%d loc=%q", w.Code, w.Header().Get("Location"))
	}
	c := sessionCookie(t, w)
	if c == nil || c.Value != "" {
		t.Fatalf("expected an expired empty session cookie")
	}
}
