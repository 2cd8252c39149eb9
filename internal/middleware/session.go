package middleware

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/tourpal/internal/config"
	"github.com/ghaggin/tourpal/internal/template"
)

const (
	flashKey = "flash"
)

// SessionManager keeps per-browser cookie state. The signed-in user lives
// in the process-wide session.Manager; this only carries flash messages
// across redirects.
type SessionManager struct {
	impl *scs.SessionManager
}

func NewSessionManager(cfg *config.Config) (*SessionManager, error) {
	gob.Register(&template.Flash{})

	sm := &SessionManager{}
	sm.impl = scs.New()
	sm.impl.Lifetime = cfg.Server.FlashLifetime
	sm.impl.Cookie.Name = "tourpal_flash"
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Flash(ctx context.Context, kind string, message string) {
	s.impl.Put(ctx, flashKey, &template.Flash{Kind: kind, Message: message})
}

// PopFlash returns the pending flash message, if any, and forgets it.
func (s *SessionManager) PopFlash(ctx context.Context) *template.Flash {
	flash, ok := s.impl.Pop(ctx, flashKey).(*template.Flash)
	if !ok {
		return nil
	}
	return flash
}
