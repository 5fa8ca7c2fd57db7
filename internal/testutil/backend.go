// Package testutil provides an in-memory stand-in for the survey backend so
// the HTTP client can be exercised end to end.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request is one call received by the Backend.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      []byte
	Header    http.Header
	RequestID string
}

// Reply is what the Backend answers on a route. A zero Status means 200.
type Reply struct {
	Status      int
	JSON        any
	Raw         []byte
	ContentType string
}

type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
}

// NewBackend starts a backend serving the survey API routes. Each route
// answers with the Reply set through Reply, or 404 if none was set.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{replies: make(map[string]Reply)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/vote", b.handle("POST /api/vote"))
		r.Route("/stats", func(r chi.Router) {
			r.Get("/", b.handle("GET /api/stats"))
			r.Get("/comparacao", b.handle("GET /api/stats/comparacao"))
		})
		r.Route("/export", func(r chi.Router) {
			r.Get("/excel", b.handle("GET /api/export/excel"))
			r.Post("/txt", b.handle("POST /api/export/txt"))
		})
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// Reply sets the answer for a route key such as "GET /api/stats".
func (b *Backend) Reply(route string, reply Reply) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[route] = reply
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

func (b *Backend) handle(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			Body:      body,
			Header:    r.Header.Clone(),
			RequestID: r.Header.Get("X-Request-ID"),
		})
		reply, ok := b.replies[route]
		b.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no reply configured"})
			return
		}

		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		if reply.Raw != nil {
			contentType := reply.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(status)
			w.Write(reply.Raw)
			return
		}
		writeJSON(w, status, reply.JSON)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
