package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/i18n"
	"github.com/dsmorokov/teamup/internal/models"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/view"
)

// AdminHandler serves the operator dashboard. It reads counts straight off
// the DB; user state changes go through the service layer like everywhere
// else.
type AdminHandler struct {
	db    *gorm.DB
	users *services.UserService
	log   *zap.Logger
}

func NewAdminHandler(db *gorm.DB, users *services.UserService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{db: db, users: users, log: log}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	db := h.db.WithContext(r.Context())
	degraded := false

	count := func(q *gorm.DB) int64 {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			h.log.Error("admin count failed", zap.Error(err))
			degraded = true
		}
		return n
	}

	stats := map[string]int64{
		"TotalUsers":  count(db.Model(&models.User{})),
		"ActiveUsers": count(db.Model(&models.User{}).Where("active = ?", true)),
		"Games":       count(db.Model(&models.Game{})),
		"Messages":    count(db.Model(&models.Message{})),
		"Unread":      count(db.Model(&models.Message{}).Where("is_read = ?", false)),
	}

	// Recent signups, deactivated accounts included so they can be restored.
	var recent []models.User
	if err := db.Order("created_at DESC").Limit(10).Find(&recent).Error; err != nil {
		h.log.Error("recent users unavailable", zap.Error(err))
		degraded = true
	}

	data := map[string]any{"Stats": stats, "Recent": recent}
	if degraded {
		data["Warning"] = i18n.T(i18n.LangFrom(r.Context()), "storage_degraded")
	}
	view.Render(w, r, "admin/dashboard.html", data)
}

func (h *AdminHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *AdminHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *AdminHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	target, err := h.users.ByHandle(r.Context(), r.PathValue("handle"))
	if errors.Is(err, services.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}

	if active {
		err = h.users.Reactivate(r.Context(), target.ID)
	} else {
		err = h.users.Deactivate(r.Context(), target.ID)
	}
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
