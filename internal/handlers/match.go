package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dsmorokov/teamup/i18n"
	"github.com/dsmorokov/teamup/internal/models"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/view"
)

type MatchHandler struct {
	matches *services.MatchService
	log     *zap.Logger
}

func NewMatchHandler(matches *services.MatchService, log *zap.Logger) *MatchHandler {
	return &MatchHandler{matches: matches, log: log}
}

// Home is the landing page: newest players first. A broken datastore turns
// into an empty list with a warning banner, never an error page.
func (h *MatchHandler) Home(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	data := map[string]any{}

	users, err := h.matches.LandingList(r.Context())
	if err != nil {
		h.log.Error("landing list unavailable", zap.Error(err))
		data["Warning"] = i18n.T(lang, "storage_degraded")
	}
	data["Users"] = users

	if r.URL.Query().Get("denied") != "" {
		data["Notice"] = i18n.T(lang, "forbidden")
	}
	view.Render(w, r, "home.html", data)
}

// Find runs the teammate search. Selected titles must all be owned
// (superset match); contact checkboxes form a union; empty criteria do not
// constrain.
func (h *MatchHandler) Find(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	titles := q["games"]
	var cf services.ContactFilter
	for _, c := range q["contact_filter"] {
		switch c {
		case "discord":
			cf.Discord = true
		case "telegram":
			cf.Telegram = true
		}
	}

	selected := make(map[string]bool, len(titles))
	for _, t := range models.FilterKnown(titles) {
		selected[t] = true
	}

	data := map[string]any{
		"Available":       models.AvailableGames,
		"Selected":        selected,
		"ContactDiscord":  cf.Discord,
		"ContactTelegram": cf.Telegram,
	}

	// show results only once the form was actually submitted; unchecked
	// checkboxes never reach the query string, hence the hidden marker
	if q.Get("search") != "" || len(titles) > 0 || len(q["contact_filter"]) > 0 {
		data["Searched"] = true
		users, err := h.matches.FindMatches(r.Context(), titles, cf)
		if err != nil {
			h.log.Error("match search unavailable", zap.Error(err))
			data["Warning"] = i18n.T(i18n.LangFrom(r.Context()), "storage_degraded")
		}
		data["Results"] = users
	}
	view.Render(w, r, "find_game.html", data)
}
