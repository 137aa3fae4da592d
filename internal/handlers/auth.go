package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dsmorokov/teamup/auth"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/view"
)

type AuthHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "register.html", nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := services.RegisterInput{
		Handle:          r.FormValue("handle"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		view.Render(w, r, "register.html", map[string]any{
			"Error":  failMessage(r, h.log, err),
			"Handle": in.Handle,
			"Email":  in.Email,
		})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/profile/"+user.Handle, http.StatusSeeOther)
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in: go straight to the profile.
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		if user, err := h.users.ByID(r.Context(), uid); err == nil && user.Active {
			http.Redirect(w, r, "/profile/"+user.Handle, http.StatusSeeOther)
			return
		}
	}
	view.Render(w, r, "login.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	handle := r.FormValue("handle")
	user, err := h.users.Authenticate(r.Context(), handle, r.FormValue("password"))
	if err != nil {
		view.Render(w, r, "login.html", map[string]any{
			"Error":  failMessage(r, h.log, err),
			"Handle": handle,
		})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/profile/"+user.Handle, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
