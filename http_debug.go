package ohmage

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps each HTTP request/response to the log. Useful when
// troubleshooting server communication or credential injection; the dumps
// include tokens and passwords, so keep it out of production.
//
// Enable with WithDebugLogging(true) or by setting OHMAGE_DEBUG=true (or
// DEBUG=true) in the environment.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := dt.base
	if rt == nil {
		rt = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := rt.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks if HTTP debug logging should be enabled via
// OHMAGE_DEBUG=true (targeted) or DEBUG=true (general).
func debugLoggingRequested() bool {
	return os.Getenv("OHMAGE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
