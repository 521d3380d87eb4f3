// Package ohmage is a thin client for the ohmage data-collection server.
//
// A Client authenticates a user, caches the resulting credentials, and
// exposes request methods that forward parameters to the server and return
// the parsed JSON response verbatim. Parameter validation is pushed entirely
// to the server; the SDK's job is the authentication/credential-caching
// logic plus the shared request/error-handling pipeline.
package ohmage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ohmage/ohmage-go/internal/api"
	"github.com/ohmage/ohmage-go/internal/types"
)

// APIVersion is the server API version this SDK targets. Connect to a server
// at or above this version for best results.
const APIVersion = "2.10"

// DefaultAppPrefix is the path under which a stock server mounts its API.
const DefaultAppPrefix = "/app"

const defaultClientName = "ohmage-go-client"

// Client is a handle to an ohmage server. It stores the server address and
// the credentials cached by Login; every authenticated request method uses
// the cached credentials unless the caller supplies explicit ones.
//
// Calls are synchronous and blocking. The credential fields are the only
// mutable state; callers reusing one handle concurrently must serialize
// Login against in-flight requests themselves. No connection occurs until a
// request is made, and there is nothing to close.
type Client struct {
	server     string
	appPrefix  string
	clientName string
	http       *http.Client
	creds      types.Credentials
}

// New constructs a Client for the given server address
// (e.g. "https://dev.mobilizingcs.org"). Additional options can be provided
// via functional arguments.
func New(server string, opts ...Option) (*Client, error) {
	if server == "" {
		return nil, errors.New("ohmage: server cannot be empty")
	}
	c := &Client{
		server:     server,
		appPrefix:  DefaultAppPrefix,
		clientName: defaultClientName,
		http:       &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewFromEnv constructs a Client from OHMAGE_* environment variables.
// Explicit options override the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithAppPrefix(cfg.AppPrefix),
		WithClientName(cfg.Client),
		WithHTTPTimeout(cfg.HTTPTimeout),
	}
	return New(cfg.Server, append(base, opts...)...)
}

// baseURL is the server address plus the application prefix every endpoint
// path is resolved against.
func (c *Client) baseURL() string { return c.server + c.appPrefix }

// --------------------------------------------------------------------
// User authentication
// --------------------------------------------------------------------

// UserAuth exchanges a username and plaintext password for a hashed
// password. The response is returned verbatim; Login is the convenience
// wrapper that also caches the result.
func (c *Client) UserAuth(ctx context.Context, username, password string) (map[string]any, error) {
	res, err := api.UserAuth(ctx, c.http, c.baseURL(), types.Params{
		"user":     username,
		"password": password,
		"client":   c.clientName,
	})
	observe("/user/auth", err)
	return res, err
}

// UserAuthToken exchanges a username and plaintext password for a
// short-lived authentication token.
func (c *Client) UserAuthToken(ctx context.Context, username, password string) (map[string]any, error) {
	res, err := api.UserAuthToken(ctx, c.http, c.baseURL(), types.Params{
		"user":     username,
		"password": password,
		"client":   c.clientName,
	})
	observe("/user/auth_token", err)
	return res, err
}

// Login authenticates and stores the resulting credentials in the handle:
// the username, the hashed password (long-lived) and the token
// (short-lived). All authenticated request methods preferentially use
// explicit credentials but fall back on these saved ones.
//
// If authentication fails the returned error matches ErrAuthFailed and the
// underlying *APIError carries code "0200".
func (c *Client) Login(ctx context.Context, username, password string) error {
	res, err := c.UserAuth(ctx, username, password)
	if err != nil {
		return loginError(err)
	}
	hashed, _ := res["hashed_password"].(string)
	if hashed == "" {
		return fmt.Errorf("/user/auth: response missing hashed_password")
	}

	res, err = c.UserAuthToken(ctx, username, password)
	if err != nil {
		return loginError(err)
	}
	token, _ := res["token"].(string)
	if token == "" {
		return fmt.Errorf("/user/auth_token: response missing token")
	}

	c.creds = types.Credentials{Username: username, HashedPassword: hashed, Token: token}
	return nil
}

// loginError marks auth-code failures with the ErrAuthFailed sentinel while
// keeping the server error reachable via errors.As.
func loginError(err error) error {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) && apiErr.HasCode(types.CodeAuthFailure) {
		return errors.Join(ErrAuthFailed, err)
	}
	return err
}

// IsAuthenticated reports whether credentials are cached in this handle,
// whether or not they are still valid. Token-based authentication times out
// after a while, whereas the hashed password remains valid indefinitely.
func (c *Client) IsAuthenticated(forToken bool) bool {
	if c.creds.Username == "" {
		return false
	}
	if forToken {
		return c.creds.HasToken()
	}
	return c.creds.HasPassword()
}

// Credentials returns a copy of the cached credentials.
func (c *Client) Credentials() Credentials { return c.creds }

// SetCredentials replaces the cached credentials, e.g. with ones obtained
// out of band. Login overwrites them.
func (c *Client) SetCredentials(creds Credentials) { c.creds = creds }

// --------------------------------------------------------------------
// Generic request
// --------------------------------------------------------------------

// Request forwards params to an arbitrary endpoint path (e.g.
// "/annotation/read") as a POST and returns the parsed response verbatim.
// It is the escape hatch for endpoints without a wrapper method.
//
// When creds is non-nil it is used instead of the cached credentials; either
// way, credentials already present in params win.
func (c *Client) Request(ctx context.Context, uri string, params Params, creds *Credentials) (map[string]any, error) {
	p := c.buildParams(params, nil)
	c.injectCredentials(p, true, creds)
	res, err := api.PerformForm(ctx, c.http, c.baseURL(), uri, http.MethodPost, p)
	observe(uri, err)
	return res, err
}

// --------------------------------------------------------------------
// Server configuration
// --------------------------------------------------------------------

// ConfigRead returns information about a particular server install. No
// authentication is required.
func (c *Client) ConfigRead(ctx context.Context, params Params) (map[string]any, error) {
	res, err := api.ConfigRead(ctx, c.http, c.baseURL(), params.Clone())
	observe("/config/read", err)
	return res, err
}

// --------------------------------------------------------------------
// Campaigns
// --------------------------------------------------------------------

// CampaignRead returns campaigns filtered by the given parameters.
// output_format defaults to "short"; any optional server parameter
// (campaign_urn_list, start_date, privacy_state, ...) may be passed through
// params.
func (c *Client) CampaignRead(ctx context.Context, params Params) (map[string]any, error) {
	p := c.buildParams(params, Params{"output_format": "short"})
	c.injectCredentials(p, true, nil)
	res, err := api.CampaignRead(ctx, c.http, c.baseURL(), p)
	observe("/campaign/read", err)
	return res, err
}

// CampaignReadXML returns the raw XML campaign definition for the campaigns
// selected by params. Failures still come back as the JSON envelope and are
// raised as usual.
func (c *Client) CampaignReadXML(ctx context.Context, params Params) ([]byte, error) {
	p := c.buildParams(params, nil)
	p["output_format"] = "xml"
	c.injectCredentials(p, true, nil)
	res, err := api.CampaignReadRaw(ctx, c.http, c.baseURL(), p)
	observe("/campaign/read", err)
	return res, err
}

// --------------------------------------------------------------------
// Surveys
// --------------------------------------------------------------------

// SurveyUpload uploads completed surveys for a campaign. The endpoint
// authenticates with the hashed password, not the token, and the request
// goes out as multipart/form-data with the survey list JSON-encoded into the
// "surveys" field.
func (c *Client) SurveyUpload(ctx context.Context, campaignURN, campaignCreationTimestamp string, surveys []Survey) (map[string]any, error) {
	encoded, err := json.Marshal(surveys)
	if err != nil {
		return nil, fmt.Errorf("/survey/upload: encode surveys: %w", err)
	}
	p := c.buildParams(nil, nil)
	p["campaign_urn"] = campaignURN
	p["campaign_creation_timestamp"] = campaignCreationTimestamp
	p["surveys"] = string(encoded)
	c.injectCredentials(p, false, nil)
	res, err := api.SurveyUpload(ctx, c.http, c.baseURL(), p)
	observe("/survey/upload", err)
	return res, err
}

// SurveyResponseRead reads survey responses for a campaign. Defaults follow
// the server's conventions: output_format "json-rows" and the special "all"
// URNs for column_list and user_list. The many optional filter parameters
// (prompt_id_list, start_date, sort_order, ...) pass through params.
func (c *Client) SurveyResponseRead(ctx context.Context, campaignURN string, params Params) (map[string]any, error) {
	p := c.buildParams(params, Params{
		"output_format": "json-rows",
		"column_list":   "urn:ohmage:special:all",
		"user_list":     "urn:ohmage:special:all",
	})
	p["campaign_urn"] = campaignURN
	c.injectCredentials(p, true, nil)
	res, err := api.SurveyResponseRead(ctx, c.http, c.baseURL(), p)
	observe("/survey_response/read", err)
	return res, err
}

// --------------------------------------------------------------------
// Mobility
// --------------------------------------------------------------------

// MobilityRead returns the mobility data points recorded on date
// (ISO8601-formatted).
func (c *Client) MobilityRead(ctx context.Context, date string, params Params) (map[string]any, error) {
	p := c.buildParams(params, nil)
	p["date"] = date
	c.injectCredentials(p, true, nil)
	res, err := api.MobilityRead(ctx, c.http, c.baseURL(), p)
	observe("/mobility/read", err)
	return res, err
}

// MobilityDatesRead returns the dates on which mobility data exists,
// optionally bounded by "start_date"/"end_date" params.
func (c *Client) MobilityDatesRead(ctx context.Context, params Params) (map[string]any, error) {
	p := c.buildParams(params, nil)
	c.injectCredentials(p, true, nil)
	res, err := api.MobilityDatesRead(ctx, c.http, c.baseURL(), p)
	observe("/mobility/dates/read", err)
	return res, err
}

// --------------------------------------------------------------------
// Parameter plumbing
// --------------------------------------------------------------------

// buildParams merges defaults and caller params into a fresh map carrying
// the client identifier. Caller values win over defaults; the caller's map
// is never mutated.
func (c *Client) buildParams(params, defaults Params) Params {
	p := Params{"client": c.clientName}
	for k, v := range defaults {
		p[k] = v
	}
	for k, v := range params {
		if v != "" {
			p[k] = v
		}
	}
	return p
}

// injectCredentials supplements params with credentials when the caller has
// not supplied explicit ones. Token-auth endpoints get the cached token;
// endpoints that require the long-lived credential (useToken=false), or a
// handle with no token, fall back to username plus hashed password.
func (c *Client) injectCredentials(params Params, useToken bool, creds *Credentials) {
	cr := c.creds
	if creds != nil {
		cr = *creds
	}
	if useToken && cr.HasToken() {
		if params["auth_token"] == "" {
			params["auth_token"] = cr.Token
		}
		return
	}
	if cr.HasPassword() && params["user"] == "" && params["password"] == "" {
		params["user"] = cr.Username
		params["password"] = cr.HashedPassword
	}
}
