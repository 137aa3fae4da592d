package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/dsmorokov/teamup/auth"
	"github.com/dsmorokov/teamup/internal/models"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/view"
)

type GameHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewGameHandler(users *services.UserService, log *zap.Logger) *GameHandler {
	return &GameHandler{users: users, log: log}
}

// Manage shows the owner's game list next to the catalog.
func (h *GameHandler) Manage(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	games, err := h.users.GamesOf(r.Context(), uid)
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}

	owned := make(map[string]bool, len(games))
	for _, g := range games {
		owned[g.Title] = true
	}
	view.Render(w, r, "add_game.html", map[string]any{
		"Handle":    r.PathValue("handle"),
		"Games":     games,
		"Owned":     owned,
		"Available": models.AvailableGames,
	})
}

// Add attaches one catalog title. Unknown titles and duplicates are silent
// no-ops, so this always lands back on the manage page.
func (h *GameHandler) Add(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	if err := h.users.AddGame(r.Context(), uid, r.FormValue("game_title")); err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, "/add_game/"+r.PathValue("handle"), http.StatusSeeOther)
}

// Remove deletes one game entry by id, scoped to the owner.
func (h *GameHandler) Remove(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	gameID, err := strconv.ParseUint(r.PathValue("gameID"), 10, 64)
	if err != nil {
		renderNotFound(w, r)
		return
	}

	err = h.users.RemoveGame(r.Context(), uid, uint(gameID))
	if errors.Is(err, services.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, "/add_game/"+r.PathValue("handle"), http.StatusSeeOther)
}
