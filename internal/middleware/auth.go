package middleware

import (
	"net/http"
	"strings"
	"time"

	"charitysite/internal/entity"
	"charitysite/internal/session"
)

// Gate intercepts requests to the admin namespace before any page renders.
// It is deliberately independent of the page-level RequireSession guards:
// both layers enforce the same rules and neither supersedes the other.
type Gate struct {
	codec session.TokenCodec
	now   func() time.Time
}

func NewGate(codec session.TokenCodec) *Gate {
	return &Gate{codec: codec, now: time.Now}
}

func (g *Gate) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isAdminPath(path) && !strings.HasPrefix(path, "/admin/login") {
			sess, ok := g.liveSession(r)
			if !ok {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			if strings.HasPrefix(path, "/admin/manage-admins") && !sess.IsSuperAdmin() {
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
				return
			}
		}

		// An already-authenticated admin has no business on the login page.
		if path == "/admin/login" {
			if _, ok := g.liveSession(r); ok {
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// liveSession decodes the cookie without mutating it. Decode failures and
// expired sessions are both "no session".
func (g *Gate) liveSession(r *http.Request) (entity.Session, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return entity.Session{}, false
	}

	sess, ok := g.codec.Decode(cookie.Value)
	if !ok || sess.Expired(g.now()) {
		return entity.Session{}, false
	}

	return sess, true
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}
