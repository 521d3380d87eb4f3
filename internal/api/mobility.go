package api

import (
	"context"
	"net/http"

	"github.com/ohmage/ohmage-go/internal/types"
)

// MobilityRead returns the mobility data points recorded on a given date.
func MobilityRead(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/mobility/read", http.MethodPost, params)
}

// MobilityDatesRead returns the dates on which mobility data exists,
// optionally bounded by start_date/end_date.
func MobilityDatesRead(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/mobility/dates/read", http.MethodPost, params)
}
