package server

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/preston-bernstein/game-catalog-service/internal/poller"
)

type stubPoller struct {
	startCalls atomic.Int32
	stopCalls  atomic.Int32
	stopErr    error
	status     poller.Status
}

func (p *stubPoller) Start(context.Context) { p.startCalls.Add(1) }

func (p *stubPoller) Stop(context.Context) error {
	p.stopCalls.Add(1)
	return p.stopErr
}

func (p *stubPoller) Status() poller.Status { return p.status }

// fakeHTTPServer returns listenErr from ListenAndServe. When block is set,
// Shutdown waits for it or for the context to end.
type fakeHTTPServer struct {
	addr        string
	listenErr   error
	shutdownErr error
	block       chan struct{}

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.listenCalls.Add(1)
	return f.listenErr
}

func (f *fakeHTTPServer) Shutdown(ctx context.Context) error {
	f.shutdownCalls.Add(1)
	if f.block == nil {
		return f.shutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.block:
		return f.shutdownErr
	}
}

func (f *fakeHTTPServer) Addr() string {
	if f.addr == "" {
		return ":0"
	}
	return f.addr
}

func (f *fakeHTTPServer) Handler() http.Handler { return http.NotFoundHandler() }
