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

func TestProfileViewShowsPlayerCard(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "pixel_witch")
	db.Create(&models.Game{UserID: u.ID, Title: "Dota 2"})
	h := NewProfileHandler(services.NewUserService(db), testLog)

	req := httptest.NewRequest(http.MethodGet, "/profile/pixel_witch", nil)
	req.SetPathValue("handle", "pixel_witch")
	w := httptest.NewRecorder()
	h.View(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "pixel_witch") || !strings.Contains(body, "Dota 2") {
		t.Fatalf("expected handle and game in page")
	}
	if strings.Contains(body, "delete_user") {
		t.Fatalf("anonymous visitor must not see owner actions")
	}
}

func TestProfileViewOwnerSeesActions(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "pixel_witch")
	h := NewProfileHandler(services.NewUserService(db), testLog)

	req := asUser(httptest.NewRequest(http.MethodGet, "/profile/pixel_witch", nil), u.ID)
	req.SetPathValue("handle", "pixel_witch")
	w := httptest.NewRecorder()
	h.View(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "/delete_user/pixel_witch") || !strings.Contains(body, "/edit_profile/pixel_witch") {
		t.Fatalf("expected owner actions on own profile")
	}
}

func TestProfileViewUnknownHandle(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewProfileHandler(services.NewUserService(db), testLog)

	req := httptest.NewRequest(http.MethodGet, "/profile/ghost", nil)
	req.SetPathValue("handle", "ghost")
	w := httptest.NewRecorder()
	h.View(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestProfileViewDeactivatedReadsAsGone(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "gone_user")
	db.Model(&models.User{}).Where("id = ?", u.ID).Update("active", false)
	h := NewProfileHandler(services.NewUserService(db), testLog)

	req := httptest.NewRequest(http.MethodGet, "/profile/gone_user", nil)
	req.SetPathValue("handle", "gone_user")
	w := httptest.NewRecorder()
	h.View(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deactivated profile, got %d", w.Code)
	}
}

func TestProfileUpdatePersistsAndRedirects(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "pixel_witch")
	h := NewProfileHandler(services.NewUserService(db), testLog)

	form := url.Values{
		"description":    {"  Support main, EU evenings  "},
		"discord":        {"pixel#1337"},
		"telegram":       {""},
		"contact":        {""},
		"preferred_role": {"support"},
	}
	req := asUser(formReq("/edit_profile/pixel_witch", form), u.ID)
	req.SetPathValue("handle", "pixel_witch")
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/profile/pixel_witch" {
		t.Fatalf("expected redirect back to profile, code=%d loc=%q", w.Code, w.Header().Get("Location"))
	}
	var got models.User
	db.First(&got, u.ID)
	if got.Description != "Support main, EU evenings" || got.Discord != "pixel#1337" || got.PreferredRole != "support" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestProfileUpdateRejectsOversizedField(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "pixel_witch")
	h := NewProfileHandler(services.NewUserService(db), testLog)

	form := url.Values{"description": {strings.Repeat("x", 501)}}
	req := asUser(formReq("/edit_profile/pixel_witch", form), u.ID)
	req.SetPathValue("handle", "pixel_witch")
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Too long") {
		t.Fatalf("expected form re-render with field error, code=%d", w.Code)
	}
	var got models.User
	db.First(&got, u.ID)
	if got.Description != models.DefaultDescription {
		t.Fatalf("oversized description must not be saved")
	}
}

func TestProfileDeleteDeactivatesAndLogsOut(t *testing.T) {
	db := setupHandlerTestDB(t)
	u := seedAccount(t, db, "pixel_witch")
	h := NewProfileHandler(services.NewUserService(db), testLog)

	req := asUser(formReq("/delete_user/pixel_witch", url.Values{}), u.ID)
	req.SetPathValue("handle", "pixel_witch")
	w := httptest.NewRecorder()
	h.Delete(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, code=%d loc=%q", w.Code, w.Header().Get("Location"))
	}
	c := sessionCookie(t, w)
	if c == nil || c.Value != "" {
		t.Fatalf("expected cleared session cookie")
	}
	var got models.User
	db.First(&got, u.ID)
	if got.Active {
		t.Fatalf("account should be deactivated, not deleted")
	}
}
