// Package source acquires the host's cumulative network byte counters.
package source

import (
	"context"
	"errors"
	"log/slog"
)

// ErrUnavailable is returned when the underlying query mechanism cannot
// produce a counter reading.
var ErrUnavailable = errors.New("traffic counters unavailable")

// Source reads the cumulative received/sent byte counters for all network
// interfaces combined.
type Source interface {
	Sample(ctx context.Context) (received, sent uint64, err error)
}

// New selects the counter source for this host, once at startup. The
// kernel counters are read through gopsutil when possible; otherwise the
// source falls back to parsing netstat(8) output.
func New(ctx context.Context) Source {
	ps := &psutilSource{}
	if _, _, err := ps.Sample(ctx); err == nil {
		return ps
	}
	slog.Warn("Kernel counters unreadable, falling back to netstat")
	return newNetstatSource()
}
