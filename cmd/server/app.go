package main

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/auth"
	"github.com/dsmorokov/teamup/httpx"
	"github.com/dsmorokov/teamup/i18n"
	"github.com/dsmorokov/teamup/internal/middleware"
	"github.com/dsmorokov/teamup/internal/policy"
	"github.com/dsmorokov/teamup/view"
)

// App is the root http.Handler: the full route table wrapped in the global
// middleware chain.
type App struct {
	mux       *http.ServeMux
	handler   http.Handler
	db        *gorm.DB
	routerCfg *policy.RouterConfig
	log       *zap.Logger
}

// NewApp wires routes, template resolvers and middleware around a configured
// RouterConfig.
func NewApp(db *gorm.DB, routerCfg *policy.RouterConfig, log *zap.Logger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		routerCfg: routerCfg,
		log:       log,
	}

	// Template resolvers are plain callbacks so view stays free of policy and
	// service imports.
	view.SetLangResolver(func(r *http.Request) string {
		return i18n.LangFrom(r.Context())
	})
	view.SetViewerResolver(func(r *http.Request) string {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			return ""
		}
		u, err := routerCfg.Users.ByID(r.Context(), uid)
		if err != nil {
			return ""
		}
		return u.Handle
	})
	view.SetIsAdminResolver(routerCfg.Guard.IsAdmin)

	app.setupRoutes()

	// Outermost to innermost: request id + access log, panic recovery,
	// session context, language preferences.
	app.handler = middleware.RequestLog(log)(
		middleware.Recover(log)(
			auth.Middleware(
				middleware.Prefs(app.mux))))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	cfg := a.routerCfg

	// Public pages
	a.mux.HandleFunc("GET /{$}", cfg.Match.Home)
	a.mux.HandleFunc("GET /find_game", cfg.Match.Find)
	a.mux.HandleFunc("GET /register", cfg.Auth.RegisterForm)
	a.mux.HandleFunc("POST /register", cfg.Auth.Register)
	a.mux.HandleFunc("GET /login", cfg.Auth.LoginForm)
	a.mux.HandleFunc("POST /login", cfg.Auth.Login)
	a.mux.HandleFunc("GET /logout", cfg.Auth.Logout)
	a.mux.HandleFunc("GET /profile/{handle}", cfg.Profile.View)

	// Account routes: session required, {handle} must resolve to the caller.
	a.mux.Handle("GET /edit_profile", auth.RequireAuth(http.HandlerFunc(cfg.Profile.EditForm)))
	a.mux.Handle("GET /edit_profile/{handle}", a.owned(cfg.Profile.EditForm))
	a.mux.Handle("POST /edit_profile/{handle}", a.owned(cfg.Profile.Update))
	a.mux.Handle("GET /add_game/{handle}", a.owned(cfg.Games.Manage))
	a.mux.Handle("POST /add_game/{handle}", a.owned(cfg.Games.Add))
	a.mux.Handle("POST /delete_game/{handle}/{gameID}", a.owned(cfg.Games.Remove))
	a.mux.Handle("POST /delete_user/{handle}", a.owned(cfg.Profile.Delete))

	// Messaging
	a.mux.Handle("GET /messages", auth.RequireAuth(http.HandlerFunc(cfg.Messaging.List)))
	a.mux.Handle("GET /chat/{handle}", auth.RequireAuth(http.HandlerFunc(cfg.Messaging.Chat)))
	a.mux.Handle("POST /send_message/{handle}", auth.RequireAuth(http.HandlerFunc(cfg.Messaging.Send)))
	a.mux.Handle("GET /api/unread_count", auth.RequireAuth(http.HandlerFunc(cfg.Messaging.UnreadCount)))

	// Admin
	a.mux.Handle("GET /admin", a.admin(cfg.Admin.Dashboard))
	a.mux.Handle("POST /admin/users/{handle}/deactivate", a.admin(cfg.Admin.Deactivate))
	a.mux.Handle("POST /admin/users/{handle}/activate", a.admin(cfg.Admin.Activate))

	// Health endpoints
	a.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	a.mux.HandleFunc("GET /healthz", a.healthz)

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Everything else gets the styled 404 instead of the bare default.
	a.mux.HandleFunc("/", a.notFound)
}

// owned chains session auth with the ownership guard for {handle} routes.
func (a *App) owned(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(a.routerCfg.Guard.RequireOwner(h))
}

// admin chains session auth with the allow-list gate.
func (a *App) admin(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(a.routerCfg.Guard.RequireAdmin(h))
}

// healthz reports readiness including a lightweight DB roundtrip.
func (a *App) healthz(w http.ResponseWriter, _ *http.Request) {
	if err := a.db.Exec("SELECT 1").Error; err != nil {
		a.log.Warn("healthz db check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := view.Render(w, r, "404.html", nil); err != nil {
		http.NotFound(w, r)
	}
}
