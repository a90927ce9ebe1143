// Package atlastest provides a stub Atlas Command server for tests. Handlers
// are registered per method and path, and every received request is recorded
// so tests can assert on paths, query params and bodies.
package atlastest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Request is a recorded request with its body already read
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into out
func (x *Request) JSON(out any) error {
	return json.Unmarshal(x.Body, out)
}

// Server is a stub Atlas Command API backed by httptest
type Server struct {
	mu       sync.Mutex
	requests []Request

	router *chi.Mux
	server *httptest.Server
}

// New starts a stub server. Unregistered routes respond 404. Register all
// routes before issuing requests.
func New() *Server {
	s := &Server{
		router: chi.NewRouter(),
	}
	s.router.Use(s.record)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	s.server = httptest.NewServer(s.router)
	return s
}

// URL returns the base URL of the stub server
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the stub server down
func (s *Server) Close() {
	s.server.Close()
}

// Handle registers a canned JSON response for a method and path pattern.
// A nil body responds with an empty body.
func (s *Server) Handle(method, pattern string, status int, body any) {
	s.router.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		if body == nil {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// HandleFunc registers a custom handler for a method and path pattern
func (s *Server) HandleFunc(method, pattern string, handler http.HandlerFunc) {
	s.router.MethodFunc(method, pattern, handler)
}

// Requests returns a copy of every recorded request in arrival order
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the recorded requests matching method and exact path
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// LastRequest returns the most recent request, or nil when none arrived
func (s *Server) LastRequest() *Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return &reqs[len(reqs)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
