package api

import (
	"context"
	"net/http"

	"github.com/ohmage/ohmage-go/internal/types"
)

// UserAuth exchanges a username and plaintext password for a hashed password
// that remains valid indefinitely.
func UserAuth(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/user/auth", http.MethodPost, params)
}

// UserAuthToken exchanges a username and plaintext password for a
// short-lived authentication token.
func UserAuthToken(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/user/auth_token", http.MethodPost, params)
}
