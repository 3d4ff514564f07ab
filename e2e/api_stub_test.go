//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// apiStub serves canned search results and records what was asked
type apiStub struct {
	srv *httptest.Server

	mu      sync.Mutex
	queries []string
	delay   map[string]time.Duration
}

func newAPIStub(t *testing.T) *apiStub {
	s := &apiStub{delay: make(map[string]time.Duration)}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *apiStub) URL() string {
	return s.srv.URL + "/dev/search"
}

// Delay makes responses for query take d
func (s *apiStub) Delay(query string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[query] = d
}

// Queries returns the search texts received so far
func (s *apiStub) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func (s *apiStub) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("kv")

	s.mu.Lock()
	s.queries = append(s.queries, q)
	d := s.delay[q]
	s.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch q {
	case "piz", "pizza":
		_, _ = w.Write([]byte(`[{"name":"Pizza Margherita","calories_per_serving":250,"serving_size":"1 slice"},{"name":"Pizza Bianca","calories_per_serving":230}]`))
	case "chicken":
		_, _ = w.Write([]byte(`[{"name":"Chicken Tikka","spice_level":3},{"name":"Chicken Soup"},{"name":"Chicken Wings"}]`))
	case "err":
		w.WriteHeader(http.StatusInternalServerError)
	case "bad":
		_, _ = w.Write([]byte(`{"message":"not a list"}`))
	default:
		_, _ = w.Write([]byte(`[]`))
	}
}
