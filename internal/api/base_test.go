package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ohmage/ohmage-go/internal/types"
)

func TestPerformForm_SuccessPassthrough(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","data":{"urn:campaign:CS101":{"name":"CS101"}}}`))
	}))
	defer srv.Close()

	got, err := PerformForm(context.Background(), srv.Client(), srv.URL, "/campaign/read", http.MethodPost, types.Params{"client": "t"})
	if err != nil {
		t.Fatalf("PerformForm: %v", err)
	}
	if got["result"] != "success" {
		t.Fatalf("result not passed through: %+v", got)
	}
	data, ok := got["data"].(map[string]any)
	if !ok || data["urn:campaign:CS101"] == nil {
		t.Fatalf("data not passed through verbatim: %+v", got)
	}
}

func TestPerformForm_FailureEnvelope(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"failure","errors":[{"code":"0200","text":"invalid credentials"}]}`))
	}))
	defer srv.Close()

	_, err := PerformForm(context.Background(), srv.Client(), srv.URL, "/user/auth", http.MethodPost, nil)
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *types.APIError, got %v", err)
	}
	if !apiErr.HasCode("0200") {
		t.Fatalf("codes missing 0200: %v", apiErr.Codes())
	}
}

func TestPerformForm_Non200WithEnvelope(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"result":"failure","errors":[{"code":"0103","text":"server busy"}]}`))
	}))
	defer srv.Close()

	_, err := PerformForm(context.Background(), srv.Client(), srv.URL, "/campaign/read", http.MethodPost, nil)
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) || !apiErr.HasCode("0103") {
		t.Fatalf("expected envelope error to win over HTTP status, got %v", err)
	}
}

func TestPerformForm_Non200WithoutEnvelope(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := PerformForm(context.Background(), srv.Client(), srv.URL, "/campaign/read", http.MethodPost, nil)
	var httpErr *types.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *types.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadGateway || httpErr.Body != "upstream unavailable" {
		t.Fatalf("unexpected http error: %+v", httpErr)
	}
}

func TestPerformForm_NetworkErrorPropagates(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	_, err := PerformForm(context.Background(), http.DefaultClient, srv.URL, "/user/auth", http.MethodPost, nil)
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		t.Fatalf("expected *url.Error to survive wrapping, got %v", err)
	}
	if !strings.Contains(err.Error(), "/user/auth") {
		t.Fatalf("endpoint context missing from error: %v", err)
	}
}

func TestDoForm_Encoding(t *testing.T) {
	t.Parallel()
	var gotGet, gotPost *http.Request
	var postForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gotGet = r.Clone(context.Background())
		case http.MethodPost:
			_ = r.ParseForm()
			gotPost = r.Clone(context.Background())
			postForm = r.PostForm
		}
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	defer srv.Close()

	params := types.Params{"user": "alice", "empty": "", "client": "t"}
	if _, err := PerformForm(context.Background(), srv.Client(), srv.URL, "/config/read", http.MethodGet, params); err != nil {
		t.Fatalf("GET: %v", err)
	}
	if gotGet.URL.Query().Get("user") != "alice" {
		t.Fatalf("GET params not in query string: %s", gotGet.URL.RawQuery)
	}
	if _, present := gotGet.URL.Query()["empty"]; present {
		t.Fatalf("empty param should be dropped: %s", gotGet.URL.RawQuery)
	}

	if _, err := PerformForm(context.Background(), srv.Client(), srv.URL, "/user/auth", http.MethodPost, params); err != nil {
		t.Fatalf("POST: %v", err)
	}
	if ct := gotPost.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("POST content type: %s", ct)
	}
	if postForm.Get("user") != "alice" {
		t.Fatalf("POST params not form-encoded: %v", postForm)
	}
}

func TestPerformFormRaw_XMLPassthrough(t *testing.T) {
	t.Parallel()
	xml := `<?xml version="1.0" encoding="UTF-8"?><campaign/>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(xml))
	}))
	defer srv.Close()

	got, err := PerformFormRaw(context.Background(), srv.Client(), srv.URL, "/campaign/read", http.MethodPost, nil)
	if err != nil {
		t.Fatalf("PerformFormRaw: %v", err)
	}
	if string(got) != xml {
		t.Fatalf("xml body not passed through: %q", got)
	}
}

func TestPerformFormRaw_FailureEnvelope(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"failure","errors":[{"code":"0701","text":"no such campaign"}]}`))
	}))
	defer srv.Close()

	_, err := PerformFormRaw(context.Background(), srv.Client(), srv.URL, "/campaign/read", http.MethodPost, nil)
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) || !apiErr.HasCode("0701") {
		t.Fatalf("expected api error for json failure body, got %v", err)
	}
}

func TestPerformMultipart(t *testing.T) {
	t.Parallel()
	var contentType string
	var fields map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		fields = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			fields[k] = vs[0]
		}
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	defer srv.Close()

	params := types.Params{"user": "alice", "password": "hashed", "surveys": `[{"survey_id":"s1"}]`, "skipme": ""}
	if _, err := PerformMultipart(context.Background(), srv.Client(), srv.URL, "/survey/upload", params); err != nil {
		t.Fatalf("PerformMultipart: %v", err)
	}
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		t.Fatalf("content type: %s", contentType)
	}
	if fields["surveys"] != `[{"survey_id":"s1"}]` || fields["user"] != "alice" {
		t.Fatalf("fields not encoded: %v", fields)
	}
	if _, present := fields["skipme"]; present {
		t.Fatalf("empty field should be dropped: %v", fields)
	}
}

func TestPerformForm_CanceledContext(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PerformForm(ctx, srv.Client(), srv.URL, "/user/auth", http.MethodPost, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
