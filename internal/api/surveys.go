package api

import (
	"context"
	"net/http"

	"github.com/ohmage/ohmage-go/internal/types"
)

// SurveyUpload uploads completed surveys as multipart/form-data. The caller
// is responsible for JSON-encoding the survey list into the "surveys" field
// and for authenticating with a hashed password (the endpoint does not
// accept tokens).
func SurveyUpload(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformMultipart(ctx, hc, baseURL, "/survey/upload", params)
}

// SurveyResponseRead reads survey responses with server-controlled output
// formats and column selection.
func SurveyResponseRead(ctx context.Context, hc *http.Client, baseURL string, params types.Params) (map[string]any, error) {
	return PerformForm(ctx, hc, baseURL, "/survey_response/read", http.MethodPost, params)
}
