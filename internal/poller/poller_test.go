package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/testutil"
)

type stubRefresher struct {
	calls  atomic.Int32
	count  int
	err    atomic.Pointer[error]
	notify chan struct{}
}

func (s *stubRefresher) Refresh(ctx context.Context) (int, error) {
	if s.calls.Add(1) == 1 && s.notify != nil {
		close(s.notify)
	}
	if errp := s.err.Load(); errp != nil {
		return 0, *errp
	}
	return s.count, nil
}

func (s *stubRefresher) fail(err error) {
	if err == nil {
		s.err.Store(nil)
		return
	}
	s.err.Store(&err)
}

type stubCycles struct {
	cycles, failures int
}

func (s *stubCycles) RecordCatalogRefresh(_ time.Duration, err error) {
	s.cycles++
	if err != nil {
		s.failures++
	}
}

func TestPollerRefreshesOnStartAndTick(t *testing.T) {
	r := &stubRefresher{count: 9, notify: make(chan struct{})}
	p := New(r, nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-r.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	time.Sleep(50 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())

	if r.calls.Load() < 2 {
		t.Fatalf("expected initial and ticked refresh, got %d", r.calls.Load())
	}
	if p.Status().LastCount != 9 {
		t.Fatalf("expected count recorded, got %d", p.Status().LastCount)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	r := &stubRefresher{notify: make(chan struct{})}
	p := New(r, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-r.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := r.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if r.calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional refreshes after stop; before=%d after=%d", callsAfterStop, r.calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&stubRefresher{}, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&stubRefresher{}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&stubRefresher{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&stubRefresher{}, nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	r := &stubRefresher{count: 3}
	r.fail(errors.New("boom"))
	cycles := &stubCycles{}
	p := New(r, nil, cycles, time.Millisecond)
	p.now = testutil.NowAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	p.refreshOnce(context.Background())
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	r.fail(nil)
	p.refreshOnce(context.Background())
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() {
		t.Fatalf("expected success timestamp")
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
	if cycles.cycles != 2 || cycles.failures != 1 {
		t.Fatalf("unexpected cycle metrics %+v", cycles)
	}
}

func TestStatusNotReadyAfterRepeatedFailures(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if s.IsReady() {
		t.Fatal("expected not ready after three failures")
	}
}

func TestPollerLogsOnErrorAndSuccess(t *testing.T) {
	r := &stubRefresher{count: 1}
	r.fail(errors.New("fail"))
	logger, buf := testutil.NewBufferLogger()

	p := New(r, logger, nil, time.Second)
	p.refreshOnce(context.Background())
	if !strings.Contains(buf.String(), "poller refresh failed") {
		t.Fatalf("expected failure log, got %s", buf.String())
	}

	r.fail(nil)
	p.refreshOnce(context.Background())
	if !strings.Contains(buf.String(), "poller refreshed catalog") {
		t.Fatalf("expected success log, got %s", buf.String())
	}
}

func BenchmarkPollerRefreshOnce(b *testing.B) {
	p := New(&stubRefresher{count: 10}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.refreshOnce(ctx)
	}
}
