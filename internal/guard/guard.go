package guard

import (
	"net/http"

	"github.com/ghaggin/tourpal/internal/model"
)

const (
	LoginPath = "/login"
)

type Decision int

const (
	// Wait means the session has not been loaded yet.
	Wait Decision = iota
	RedirectLogin
	Render
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "redirect-login"
	case Render:
		return "render"
	}
	return "wait"
}

// Admit decides what a request for a view guarded by roles gets. An empty
// roles list admits any authenticated user. Role mismatch and missing
// authentication both redirect to login.
func Admit(s model.Session, roles ...model.Role) Decision {
	if s.Loading() {
		return Wait
	}

	if !s.IsAuthenticated() || s.User == nil {
		return RedirectLogin
	}

	if len(roles) == 0 {
		return Render
	}

	for _, r := range roles {
		if s.User.UserType == r {
			return Render
		}
	}

	return RedirectLogin
}

type SessionSource interface {
	Snapshot() model.Session
}

// Require guards next with Admit. The intended path is not remembered
// across the redirect.
func Require(src SessionSource, roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch Admit(src.Snapshot(), roles...) {
			case Wait:
				writePlaceholder(w)
			case RedirectLogin:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func writePlaceholder(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`<!DOCTYPE html><html><head><meta http-equiv="refresh" content="1"></head><body><div>Loading...</div></body></html>`))
}
