package web

import (
	"net/http"

	"github.com/ghaggin/tourpal/internal/api"
	"github.com/ghaggin/tourpal/internal/auth"
	"github.com/ghaggin/tourpal/internal/guard"
	"github.com/ghaggin/tourpal/internal/middleware"
	"github.com/ghaggin/tourpal/internal/model"
	"github.com/ghaggin/tourpal/internal/template"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	flashSuccess = "success"
	flashError   = "error"

	sessionExpiredMessage = "Your session has expired. Please sign in again."
	genericMessage        = "Something went wrong. Please try again."
)

// errNavigating stops a page from being written once the request has been
// asked to navigate elsewhere.
var errNavigating = errors.New("request is navigating away")

// navigating reports whether something during this request, typically the
// api rejecting the session, asked for a redirect.
func navigating(r *http.Request) bool {
	return middleware.NavigationTarget(r.Context()) != ""
}

// handlerFunc is a page handler. Failures it cannot show inline are
// returned and rendered by handle.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http. A redirect requested while fn ran, as when the
// api rejects the session, takes precedence over whatever fn returned as
// long as nothing has been written yet.
func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		err := fn(ww, r)
		written := ww.Status() != 0

		if target := middleware.NavigationTarget(r.Context()); target != "" && !written {
			s.flash.Flash(r.Context(), flashError, sessionExpiredMessage)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		if err == nil {
			return
		}

		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)

		if written {
			return
		}

		status := http.StatusInternalServerError
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			status = http.StatusBadGateway
		}

		d := s.data(r, "Error", nil)
		d.Error = api.MessageOf(err, genericMessage)
		if err := template.Render(w, status, "message.html", d); err != nil {
			s.log.Error("failed to render error page", zap.Error(err))
			http.Error(w, genericMessage, status)
		}
	}
}

var navLabels = map[string]string{
	"/dashboard/user":      "My Bookings",
	"/dashboard/provider":  "My Vehicles",
	"/dashboard/admin":     "Management",
	"/dashboard/profile":   "My Profile",
	"/dashboard/create-ad": "Create Ad",
}

func navFor(role model.Role) []template.NavLink {
	var links []template.NavLink
	for _, path := range guard.Bindings[role] {
		links = append(links, template.NavLink{Path: path, Label: navLabels[path]})
	}
	return links
}

// data builds the common view model for the current session.
func (s *Server) data(r *http.Request, title string, page any) *template.Data {
	d := &template.Data{
		PageTitle: title,
		Flash:     s.flash.PopFlash(r.Context()),
		Page:      page,
	}

	if sess := s.sessions.Snapshot(); sess.IsAuthenticated() && sess.User != nil {
		d.User = sess.User
		d.Nav = navFor(sess.User.UserType)
	}

	return d
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl string, title string, page any) error {
	if navigating(r) {
		return errNavigating
	}
	return template.Render(w, http.StatusOK, tmpl, s.data(r, title, page))
}

// renderFailure shows err inline on tmpl. Account errors carry their own
// user facing message; anything else is returned to handle.
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, tmpl string, title string, page any, err error) error {
	var authErr *auth.Error
	if !errors.As(err, &authErr) || errors.Is(err, api.ErrSessionExpired) {
		return err
	}
	if navigating(r) {
		return errNavigating
	}

	d := s.data(r, title, page)
	d.Error = authErr.Message
	d.Errors = authErr.Errors
	return template.Render(w, http.StatusUnprocessableEntity, tmpl, d)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, path string, message string) error {
	if navigating(r) {
		return errNavigating
	}
	if message != "" {
		s.flash.Flash(r.Context(), flashSuccess, message)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
	return nil
}

// fail flashes err's message and goes back to path. Used by dashboard
// actions whose result is shown on the page they were posted from.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, path string, err error, fallback string) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return err
	}
	if navigating(r) {
		return errNavigating
	}

	message := api.MessageOf(err, fallback)
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		message = authErr.Message
	}

	s.log.Warn("action failed", zap.String("path", r.URL.Path), zap.Error(err))
	s.flash.Flash(r.Context(), flashError, message)
	http.Redirect(w, r, path, http.StatusSeeOther)
	return nil
}
