// Package backendtest provides an in-memory movie backend speaking the
// same REST contract as the real service, for use in tests.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/user/moviecatalog/internal/model"
)

// Request a call received by the fake backend
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// Server fake movie backend. Stored documents are raw JSON objects so that
// keys the client does not know about survive (or are dropped by) an update
// the same way the real backend behaves.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	docs     map[string]map[string]any
	order    []string
	nextID   int
	requests []Request
	failures map[string]int
}

// New starts a fake backend and registers its shutdown with t
func New(t testing.TB) *Server {
	s := &Server{
		docs:     make(map[string]map[string]any),
		failures: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Seed stores movies directly, keeping their ids; an empty id gets a fresh one.
// Returns the stored ids in order.
func (s *Server) Seed(movies ...model.Movie) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(movies))
	for _, m := range movies {
		id := m.ID
		if id == "" {
			id = s.newID()
		}
		s.put(id, map[string]any{
			"title":    m.Title,
			"author":   m.Author,
			"genre":    m.Genre,
			"synopsis": m.Synopsis,
			"picture":  m.Picture,
		})
		ids = append(ids, id)
	}
	return ids
}

// SeedRaw stores an arbitrary document under id
func (s *Server) SeedRaw(id string, doc map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(id, doc)
}

// Doc returns a copy of the stored document
func (s *Server) Doc(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, true
}

// Len number of stored movies
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// FailNext makes the next request with the given method answer with status
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

// Requests calls received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Reset forgets the recorded requests
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) newID() string {
	s.nextID++
	return "m" + strconv.Itoa(s.nextID)
}

func (s *Server) put(id string, doc map[string]any) {
	if _, ok := s.docs[id]; !ok {
		s.order = append(s.order, id)
	}
	delete(doc, "_id")
	delete(doc, "id")
	s.docs[id] = doc
}

func (s *Server) remove(id string) {
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Server) render(id string) map[string]any {
	out := map[string]any{"_id": id}
	for k, v := range s.docs[id] {
		out[k] = v
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)
		body = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})

	if status, ok := s.failures[r.Method]; ok {
		delete(s.failures, r.Method)
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	path := r.URL.Path
	switch {
	case path == "/api/movies/" && r.Method == http.MethodGet:
		list := make([]map[string]any, 0, len(s.order))
		for _, id := range s.order {
			list = append(list, s.render(id))
		}
		writeJSON(w, http.StatusOK, list)

	case path == "/api/movies/create" && r.Method == http.MethodPost:
		doc, ok := decodeDoc(body)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid movie"})
			return
		}
		id := s.newID()
		s.put(id, doc)
		writeJSON(w, http.StatusCreated, s.render(id))

	case strings.HasPrefix(path, "/api/movies/"):
		id := strings.TrimPrefix(path, "/api/movies/")
		if _, ok := s.docs[id]; !ok || id == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "movie not found"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, s.render(id))
		case http.MethodPut:
			doc, ok := decodeDoc(body)
			if !ok {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid movie"})
				return
			}
			// full replace
			s.put(id, doc)
			writeJSON(w, http.StatusOK, s.render(id))
		case http.MethodDelete:
			s.remove(id)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func decodeDoc(body []byte) (map[string]any, bool) {
	var doc map[string]any
	if len(body) == 0 || json.Unmarshal(body, &doc) != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
