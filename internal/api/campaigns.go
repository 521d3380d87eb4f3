package api

import (
	"context"
	"net/http"

	"github.com/ohmage/ohmage-go/internal/types"
)

// CampaignRead returns campaigns filtered by the given parameters.
func CampaignRead(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/campaign/read", http.MethodPost, params)
}

// CampaignReadRaw is CampaignRead for output formats that are not JSON
// (the server answers output_format=xml with a raw campaign definition).
func CampaignReadRaw(ctx context.Context, hc *http.Client, baseURL string, params types.Params) ([]byte, error) {
	return PerformFormRaw(ctx, hc, baseURL, "/campaign/read", http.MethodPost, params)
}
