// Package backendtest provides an in-process fake of the classifieds search
// backend for tests.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const (
	RefreshPath  = "/search"
	LocalPath    = "/ads/local_search"
	SemanticPath = "/ads/semantic_search"
)

// Call records one request seen by the fake backend.
type Call struct {
	Path      string
	Query     string
	RequestID string
	UserAgent string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	handlers map[string]http.HandlerFunc
}

// New starts a fake backend that answers every endpoint with 200 and an
// empty result list until handlers are replaced. The server is closed on
// test cleanup.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		handlers: map[string]http.HandlerFunc{
			RefreshPath:  Status(http.StatusOK),
			LocalPath:    JSON(http.StatusOK, `[]`),
			SemanticPath: JSON(http.StatusOK, `[]`),
		},
	}

	router := mux.NewRouter()
	for _, path := range []string{RefreshPath, LocalPath, SemanticPath} {
		router.HandleFunc(path, s.dispatch(path)).Methods(http.MethodGet)
	}

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) dispatch(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Path:      path,
			Query:     r.URL.Query().Get("q"),
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.Header.Get("User-Agent"),
		})
		h := s.handlers[path]
		s.mu.Unlock()

		h(w, r)
	}
}

// Handle replaces the handler for one of the backend paths.
func (s *Server) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = h
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Paths lists requested paths in arrival order.
func (s *Server) Paths() []string {
	calls := s.Calls()
	paths := make([]string, len(calls))
	for i, c := range calls {
		paths[i] = c.Path
	}
	return paths
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func Status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
}

func JSON(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

// Drop closes the connection without answering, which surfaces as a
// transport error on the client.
func Drop() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("backendtest: response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(err)
		}
		_ = conn.Close()
	}
}
