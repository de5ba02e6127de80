// Package upstreamtest provides a scriptable stand-in for the character API.
package upstreamtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

// Response is one canned answer served by Server.
type Response struct {
	Status int
	Body   string
	Header http.Header
	Delay  time.Duration
}

// RecordedRequest captures what the gateway sent upstream.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
}

// Server answers requests from a FIFO queue of responses and records every
// request it receives. With an empty queue it replies 500.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	queue    []Response
	requests []RecordedRequest
}

// NewServer starts a server that is closed when the test ends.
func NewServer(tb testing.TB) *Server {
	tb.Helper()
	s := &Server{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	tb.Cleanup(s.srv.Close)
	return s
}

// URL returns the base URL to configure the gateway with.
func (s *Server) URL() string {
	return s.srv.URL + "/"
}

// Enqueue appends a response to the queue.
func (s *Server) Enqueue(r Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, r)
}

// EnqueueJSON appends a JSON response with the given status.
func (s *Server) EnqueueJSON(status int, body string) {
	s.Enqueue(Response{
		Status: status,
		Body:   body,
		Header: http.Header{"Content-Type": []string{"application/json"}},
	})
}

// Requests returns every request received so far, in arrival order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests received so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
	})
	var resp Response
	queued := len(s.queue) > 0
	if queued {
		resp = s.queue[0]
		s.queue = s.queue[1:]
	}
	s.mu.Unlock()

	if !queued {
		http.Error(w, `{"error":"no response queued"}`, http.StatusInternalServerError)
		return
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for k, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}
