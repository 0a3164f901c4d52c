package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
)

// LogBuffer collects handler output. Pollers and debouncers log from their
// own goroutines, so reads and writes share a lock.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

// NewBufferLogger returns a text logger at info level and the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

// NewRecorderWithShutdown stands in for metrics.Setup when telemetry is off.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	noop := func(context.Context) error { return nil }
	return metrics.NewRecorder(), noop
}
