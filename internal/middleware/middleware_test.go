package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghaggin/tourpal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigation(t *testing.T) {
	assert := assert.New(t)

	var got string
	h := Navigation(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(NavigationTarget(r.Context()))
		Navigator{}.Navigate(r.Context(), "/login")
		got = NavigationTarget(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal("/login", got)
}

func TestNavigate_OutsideRequest(t *testing.T) {
	ctx := context.Background()
	Navigate(ctx, "/login")
	assert.Empty(t, NavigationTarget(ctx))
}

func TestFlash_SurvivesOneRedirect(t *testing.T) {
	require := require.New(t)

	cfg := &config.Config{}
	cfg.Server.FlashLifetime = time.Minute
	sm, err := NewSessionManager(cfg)
	require.NoError(err)

	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		sm.Flash(r.Context(), "success", "Password changed")
		w.WriteHeader(http.StatusNoContent)
	})
	var popped []string
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		if f := sm.PopFlash(r.Context()); f != nil {
			popped = append(popped, f.Message)
		}
	})
	h := sm.Wrap(mux)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(cookies)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Equal([]string{"Password changed"}, popped)
}
