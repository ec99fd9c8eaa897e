// Package meter contains the traffic accounting core: the pure counter
// reconciliation logic and the long-running accumulation loop that samples
// the host counters, persists per-tick deltas, and publishes running totals.
package meter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shini4i/trafic/internal/report"
)

// DefaultInterval is the default time between counter polls.
const DefaultInterval = 5 * time.Minute

// Source yields the host's cumulative received/sent byte counters.
type Source interface {
	// Sample returns the current cumulative counters for all interfaces
	// combined. It fails when the underlying query mechanism cannot
	// produce a reading.
	Sample(ctx context.Context) (received, sent uint64, err error)
}

// Recorder is the write side of the traffic ledger.
type Recorder interface {
	// Append records one delta under the given minute-resolution
	// timestamp. Appending twice for the same minute is a no-op.
	Append(at time.Time, received, sent uint64) error
}

// Sink receives formatted status lines. Publish must not block the
// accumulation loop meaningfully.
type Sink interface {
	Publish(text string)
}

// tickKind classifies the outcome of one accumulation tick.
type tickKind int

const (
	// tickPrimed: the first successful sample was recorded as baseline
	// and intentionally discarded. The raw counters may hold bytes
	// accumulated since boot; crediting that backlog would corrupt the
	// statistics.
	tickPrimed tickKind = iota
	// tickRecorded: a delta was computed and durably appended.
	tickRecorded
	// tickSourceFailed: the counter read failed; no state was touched.
	tickSourceFailed
	// tickStoreFailed: the delta was computed and counted in memory but
	// the append failed, so it is missing from the ledger.
	tickStoreFailed
)

// tickResult is the explicit per-tick outcome the loop acts on, instead of
// a broadly suppressed error.
type tickResult struct {
	kind  tickKind
	delta Delta
	err   error
}

// Meter owns the accumulation loop. It is safe for concurrent use: Run
// executes on its own goroutine while Totals may be read from others.
type Meter struct {
	source   Source
	recorder Recorder
	sink     Sink
	interval time.Duration

	mu     sync.Mutex
	last   RawSample
	primed bool
	totals Delta
}

// New creates a meter polling source every interval, appending deltas to
// recorder and publishing status lines to sink. A non-positive interval
// falls back to DefaultInterval.
func New(source Source, recorder Recorder, sink Sink, interval time.Duration) *Meter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Meter{
		source:   source,
		recorder: recorder,
		sink:     sink,
		interval: interval,
	}
}

// Totals returns the bytes accumulated since the loop started, i.e. the sum
// of every delta reconciled so far.
func (m *Meter) Totals() Delta {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

// Run executes the accumulation loop until ctx is cancelled. Tick failures
// are contained: they are logged and the loop proceeds to the next tick.
// The caller should wait for Run to return before treating shutdown as
// complete, so no append is left in progress.
func (m *Meter) Run(ctx context.Context) {
	slog.Info("Traffic meter started", "interval", m.interval)
	defer slog.Info("Traffic meter stopped")

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		res := m.tick(ctx)
		switch res.kind {
		case tickPrimed:
			m.sink.Publish(fmt.Sprintf("Recording in progress... (%d min)", int(m.interval.Minutes())))
		case tickRecorded:
			totals := m.Totals()
			m.sink.Publish(report.StatusLine(totals.Received, totals.Sent))
		case tickSourceFailed:
			slog.Warn("Counter read failed, skipping tick", "error", res.err)
		case tickStoreFailed:
			// The delta stays in the in-memory totals but is lost from
			// the ledger. Not retried.
			slog.Warn("Failed to persist delta", "received", res.delta.Received, "sent", res.delta.Sent, "error", res.err)
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(m.interval)

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// tick performs one sample-reconcile-persist cycle. Reconciliation state is
// only updated after a successful counter read, so a failed tick leaves the
// next one exactly where the previous success ended.
func (m *Meter) tick(ctx context.Context) tickResult {
	received, sent, err := m.source.Sample(ctx)
	if err != nil {
		return tickResult{kind: tickSourceFailed, err: err}
	}
	curr := RawSample{Received: received, Sent: sent}

	m.mu.Lock()
	if !m.primed {
		m.last = curr
		m.primed = true
		m.mu.Unlock()
		slog.Debug("Baseline sample recorded", "received", curr.Received, "sent", curr.Sent)
		return tickResult{kind: tickPrimed}
	}

	delta := Reconcile(m.last, curr)
	m.last = curr
	m.totals.add(delta)
	m.mu.Unlock()

	if err := m.recorder.Append(time.Now(), delta.Received, delta.Sent); err != nil {
		return tickResult{kind: tickStoreFailed, delta: delta, err: err}
	}
	return tickResult{kind: tickRecorded, delta: delta}
}
