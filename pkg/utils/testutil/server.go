package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// APIServer is a fake JSON API. Routes can be replaced between requests to simulate a source
// that changes over time.
type APIServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Response
	hits   map[string]int
	accept []string
	agents []string
}

type Response struct {
	Status int
	Body   string
}

// NewAPIServer starts a server closed by t.Cleanup. Unknown paths return 404.
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()

	s := &APIServer{
		routes: make(map[string]Response),
		hits:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (x *APIServer) serve(w http.ResponseWriter, r *http.Request) {
	x.mu.Lock()
	resp, ok := x.routes[r.URL.Path]
	x.hits[r.URL.Path]++
	x.accept = append(x.accept, r.Header.Get("Accept"))
	x.agents = append(x.agents, r.UserAgent())
	x.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

// JSON sets a 200 response for path.
func (x *APIServer) JSON(path, body string) {
	x.Respond(path, Response{Status: http.StatusOK, Body: body})
}

func (x *APIServer) Respond(path string, resp Response) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.routes[path] = resp
}

// Hits returns how many requests path received.
func (x *APIServer) Hits(path string) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.hits[path]
}

// AcceptHeaders returns the Accept header of every request in order.
func (x *APIServer) AcceptHeaders() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]string(nil), x.accept...)
}

// UserAgents returns the User-Agent header of every request in order.
func (x *APIServer) UserAgents() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]string(nil), x.agents...)
}
