package api

import (
	"context"
	"net/http"

	"github.com/ohmage/ohmage-go/internal/types"
)

// ConfigRead returns information about a particular server install. The
// endpoint requires no authentication.
func ConfigRead(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/config/read", http.MethodGet, params)
}
