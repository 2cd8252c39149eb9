package web

import (
	"github.com/ghaggin/tourpal/internal/middleware"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		New,
		middleware.NewSessionManager,
	),
)
