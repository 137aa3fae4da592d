package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dsmorokov/teamup/auth"
	"github.com/dsmorokov/teamup/internal/models"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/validation"
	"github.com/dsmorokov/teamup/view"
)

type ProfileHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewProfileHandler(users *services.UserService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, log: log}
}

// View shows a player card. Deactivated profiles read as gone.
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	target, err := h.users.ActiveByHandle(r.Context(), r.PathValue("handle"))
	if errors.Is(err, services.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}

	games, err := h.users.GamesOf(r.Context(), target.ID)
	if err != nil {
		// degrade: show the profile without its game list
		h.log.Warn("games unavailable", zap.Error(err), zap.String("handle", target.Handle))
		games = nil
	}

	uid, _ := auth.UserIDFromContext(r.Context())
	view.Render(w, r, "profile.html", map[string]any{
		"User":    target,
		"Games":   games,
		"IsOwner": uid == target.ID,
	})
}

// EditForm shows the edit form. Reached either as /edit_profile (self) or as
// the guarded /edit_profile/{handle}.
func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	user, err := h.users.ByID(r.Context(), uid)
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	view.Render(w, r, "edit_profile.html", map[string]any{"User": user})
}

// Update persists the profile fields and bounces back to the profile page.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	handle := r.PathValue("handle")

	in := services.ProfileInput{
		Description:   r.FormValue("description"),
		Contact:       r.FormValue("contact"),
		Discord:       r.FormValue("discord"),
		Telegram:      r.FormValue("telegram"),
		PreferredRole: r.FormValue("preferred_role"),
	}

	v := make(validation.Violations)
	validation.MaxLen("description", in.Description, 500, v)
	validation.MaxLen("contact", in.Contact, 100, v)
	validation.MaxLen("discord", in.Discord, 100, v)
	validation.MaxLen("telegram", in.Telegram, 100, v)
	validation.MaxLen("preferred_role", in.PreferredRole, 50, v)

	if !v.Empty() {
		// echo the submitted values back into the form
		display := models.User{
			Handle:        handle,
			Description:   in.Description,
			Contact:       in.Contact,
			Discord:       in.Discord,
			Telegram:      in.Telegram,
			PreferredRole: in.PreferredRole,
		}
		view.Render(w, r, "edit_profile.html", map[string]any{
			"User":   display,
			"Errors": v,
		})
		return
	}

	if err := h.users.UpdateProfile(r.Context(), uid, in); err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, "/profile/"+handle, http.StatusSeeOther)
}

// Delete deactivates the account and ends the session. The row stays so the
// handle remains reserved and conversations keep their counterpart.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.users.Deactivate(r.Context(), uid); err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
