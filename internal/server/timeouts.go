package server

import "time"

// timeouts bounds one listener.
type timeouts struct {
	readHeader time.Duration
	read       time.Duration
	// write covers a full upstream round trip plus encoding on the API listener.
	write time.Duration
	idle  time.Duration
}

var (
	apiTimeouts = timeouts{
		readHeader: 5 * time.Second,
		read:       10 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
	metricsTimeouts = timeouts{
		readHeader: 2 * time.Second,
		read:       5 * time.Second,
		write:      10 * time.Second,
		idle:       30 * time.Second,
	}
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
