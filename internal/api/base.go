// Package api implements the HTTP request pipeline shared by every server
// endpoint: form and multipart encoding, the unified response envelope
// handling, and the error mapping.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/ohmage/ohmage-go/internal/types"
)

// xmlHeader marks the rare responses (campaign XML definitions) that must be
// passed through without JSON handling.
var xmlHeader = []byte(`<?xml version="1.0" encoding="UTF-8"?>`)

// PerformForm sends a form-encoded request and returns the decoded JSON body
// verbatim. GET places parameters in the query string, everything else in an
// application/x-www-form-urlencoded body.
func PerformForm(ctx context.Context, hc *http.Client, baseURL, uri, method string, params types.Params) (map[string]any, error) {
	body, err := doForm(ctx, hc, baseURL, uri, method, params)
	if err != nil {
		return nil, err
	}
	return handleResponse(uri, body)
}

// PerformFormRaw sends a form-encoded request and returns the raw body. XML
// bodies are returned as-is; JSON bodies still go through envelope checking
// because the server reports failures as JSON regardless of the requested
// output format.
func PerformFormRaw(ctx context.Context, hc *http.Client, baseURL, uri, method string, params types.Params) ([]byte, error) {
	body, err := doForm(ctx, hc, baseURL, uri, method, params)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(body, xmlHeader) {
		return body, nil
	}
	if _, err := handleResponse(uri, body); err != nil {
		return nil, err
	}
	return body, nil
}

// PerformMultipart sends a multipart/form-data request, used by the upload
// endpoints, and returns the decoded JSON body verbatim.
func PerformMultipart(ctx context.Context, hc *http.Client, baseURL, uri string, params types.Params) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range params {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("%s: encode field %q: %w", uri, k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: finalize multipart body: %w", uri, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+uri, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := send(hc, req, uri)
	if err != nil {
		return nil, err
	}
	return handleResponse(uri, body)
}

// doForm builds and sends a form-encoded request, returning the raw body
// after HTTP-level error handling.
func doForm(ctx context.Context, hc *http.Client, baseURL, uri, method string, params types.Params) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vals := url.Values{}
	for k, v := range params {
		if v != "" {
			vals.Set(k, v)
		}
	}

	var req *http.Request
	var err error
	if method == http.MethodGet {
		full := baseURL + uri
		if enc := vals.Encode(); enc != "" {
			full += "?" + enc
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, baseURL+uri, strings.NewReader(vals.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}
	return send(hc, req, uri)
}

// send performs the request and maps transport and HTTP-level failures.
// Network errors are wrapped with the endpoint for context; the underlying
// *url.Error stays reachable via errors.As.
func send(hc *http.Client, req *http.Request, uri string) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", uri, err)
	}
	if resp.StatusCode != http.StatusOK {
		// The server reports application failures through the regular JSON
		// envelope even on non-200 responses; prefer those codes over a bare
		// HTTP error.
		if apiErr := envelopeError(body); apiErr != nil {
			return nil, apiErr
		}
		return nil, &types.HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// handleResponse decodes the JSON body, raises *types.APIError on a
// non-success envelope, and otherwise returns the whole body verbatim.
func handleResponse(uri string, body []byte) (map[string]any, error) {
	var env types.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", uri, err)
	}
	if env.Result != types.ResultSuccess {
		return nil, &types.APIError{Errors: env.Errors}
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", uri, err)
	}
	return payload, nil
}

// envelopeError returns an *types.APIError when body parses as a non-success
// envelope, nil otherwise.
func envelopeError(body []byte) error {
	var env types.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if env.Result == "" || env.Result == types.ResultSuccess {
		return nil
	}
	return &types.APIError{Errors: env.Errors}
}
