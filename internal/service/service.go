// Package service holds the REST modules for marketplace resources. Each
// one is a thin typed wrapper over the shared api.Client.
package service

import (
	"fmt"
	"net/url"

	"github.com/ghaggin/tourpal/internal/api"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		NewCars,
		NewBookings,
		NewGuides,
		NewAdvertisements,
		NewUsers,
		NewLists,
	),
)

// Result is the {success, message} answer of mutating endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// pathf fills the %s verbs of format with path-escaped segments.
func pathf(format string, segments ...string) string {
	escaped := make([]any, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf(format, escaped...)
}

type base struct {
	client *api.Client
}
