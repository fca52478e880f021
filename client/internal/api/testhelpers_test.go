package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// recorded captures the last request a stub server saw.
type recorded struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// stubServer answers every request with status and the JSON encoding of out,
// recording the request and counting hits.
func stubServer(t *testing.T, status int, out any) (*httptest.Server, *recorded, *int32) {
	t.Helper()
	rec := &recorded{}
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		rec.Method, rec.Path, rec.Query = r.Method, r.URL.Path, r.URL.RawQuery
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if out != nil {
			_ = json.NewEncoder(w).Encode(out)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rec, &hits
}
