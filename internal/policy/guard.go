package policy

import (
	"errors"
	"net/http"

	"github.com/dsmorokov/teamup/auth"
	"github.com/dsmorokov/teamup/internal/services"
)

// Guard is the central authorization point: ownership of {handle} routes and
// membership in the admin allow-list. Admin status is configuration, not a
// database column, so a compromised account cannot grant itself anything.
type Guard struct {
	users  *services.UserService
	admins map[string]struct{}
}

func NewGuard(users *services.UserService, adminHandles []string) *Guard {
	admins := make(map[string]struct{}, len(adminHandles))
	for _, h := range adminHandles {
		admins[h] = struct{}{}
	}
	return &Guard{users: users, admins: admins}
}

// RequireOwner gates routes carrying a {handle} path segment: the segment
// must resolve to a user, and that user must be the authenticated one.
// Unknown handles read as 404 so the route does not leak anything; foreign
// handles bounce home with a notice.
func (g *Guard) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		target, err := g.users.ByHandle(r.Context(), r.PathValue("handle"))
		if errors.Is(err, services.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if target.ID != uid {
			http.Redirect(w, r, "/?denied=1", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin restricts a route to accounts whose handle is on the
// allow-list.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		user, err := g.users.ByID(r.Context(), uid)
		if err != nil || !user.Active {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if _, isAdmin := g.admins[user.Handle]; !isAdmin {
			http.Redirect(w, r, "/?denied=1", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin reports whether the request's authenticated user is on the
// allow-list. Used by templates to decide whether to show admin navigation.
func (g *Guard) IsAdmin(r *http.Request) bool {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return false
	}
	user, err := g.users.ByID(r.Context(), uid)
	if err != nil || !user.Active {
		return false
	}
	_, isAdmin := g.admins[user.Handle]
	return isAdmin
}
