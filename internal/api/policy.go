package api

import (
	"context"

	"go.uber.org/zap"
)

// UnauthorizedFunc runs once for every call that fails with ErrSessionExpired,
// before the error is returned to the caller.
type UnauthorizedFunc func(ctx context.Context, err *Error)

type Clearer interface {
	Clear(ctx context.Context) error
}

type Navigator interface {
	Navigate(ctx context.Context, path string)
}

type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) {
	f(ctx, path)
}

// RedirectOnUnauthorized drops the persisted session and sends the user to
// loginPath.
func RedirectOnUnauthorized(c Clearer, n Navigator, loginPath string, log *zap.Logger) UnauthorizedFunc {
	return func(ctx context.Context, err *Error) {
		log.Info("session rejected by api, signing out", zap.String("path", err.Path))

		if cerr := c.Clear(ctx); cerr != nil {
			log.Error("failed to clear session", zap.Error(cerr))
		}

		n.Navigate(ctx, loginPath)
	}
}
