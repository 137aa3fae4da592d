package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dsmorokov/teamup/i18n"
	"github.com/dsmorokov/teamup/internal/middleware"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/view"
)

// failMessage turns a service error into the message shown to the user.
// Domain errors carry their own i18n code; anything else is logged with the
// request id and collapsed into a generic retry message.
func failMessage(r *http.Request, log *zap.Logger, err error) string {
	lang := i18n.LangFrom(r.Context())
	if code := services.Code(err); code != "" {
		return i18n.T(lang, code)
	}
	log.Error("request failed",
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
	)
	return i18n.T(lang, "retry_later")
}

// renderNotFound serves the styled 404 page with the proper status code.
func renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := view.Render(w, r, "404.html", nil); err != nil {
		http.NotFound(w, r)
	}
}

// renderErrorPage is the write-path dead end: the operation could not run and
// there is no form to re-render, so show the retry page.
func renderErrorPage(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	msg := failMessage(r, log, err)
	w.WriteHeader(http.StatusServiceUnavailable)
	if rerr := view.Render(w, r, "error.html", map[string]any{"Message": msg}); rerr != nil {
		http.Error(w, msg, http.StatusServiceUnavailable)
	}
}
