package middleware

import (
	"context"
	"net/http"
	"sync"
)

type navigationKey struct{}

type navigation struct {
	mu     sync.Mutex
	target string
}

// Navigation gives each request a slot that Navigate can fill, so code deep
// in an api call can ask for a redirect of the request that triggered it.
func Navigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), navigationKey{}, &navigation{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Navigate records path as the redirect target of the request in ctx. It is
// a no-op outside a request wrapped by Navigation.
func Navigate(ctx context.Context, path string) {
	nav, ok := ctx.Value(navigationKey{}).(*navigation)
	if !ok {
		return
	}

	nav.mu.Lock()
	defer nav.mu.Unlock()
	nav.target = path
}

func NavigationTarget(ctx context.Context) string {
	nav, ok := ctx.Value(navigationKey{}).(*navigation)
	if !ok {
		return ""
	}

	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.target
}

// Navigator satisfies api.Navigator.
type Navigator struct{}

func (Navigator) Navigate(ctx context.Context, path string) {
	Navigate(ctx, path)
}
