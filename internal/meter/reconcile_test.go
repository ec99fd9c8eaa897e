package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		prev     RawSample
		curr     RawSample
		expected Delta
	}{
		{
			name:     "both counters grew",
			prev:     RawSample{Received: 100, Sent: 50},
			curr:     RawSample{Received: 300, Sent: 120},
			expected: Delta{Received: 200, Sent: 70},
		},
		{
			name:     "no traffic",
			prev:     RawSample{Received: 100, Sent: 50},
			curr:     RawSample{Received: 100, Sent: 50},
			expected: Delta{Received: 0, Sent: 0},
		},
		{
			name:     "one counter idle",
			prev:     RawSample{Received: 100, Sent: 50},
			curr:     RawSample{Received: 150, Sent: 50},
			expected: Delta{Received: 50, Sent: 0},
		},
		{
			name:     "both counters reset",
			prev:     RawSample{Received: 300, Sent: 120},
			curr:     RawSample{Received: 50, Sent: 10},
			expected: Delta{Received: 50, Sent: 10},
		},
		{
			name: "only received reset",
			// Known-lossy: the whole current sample is credited even
			// though sent kept counting across the reset boundary, so
			// the sent figure may overcount. There is no ground truth
			// to do better with.
			prev:     RawSample{Received: 500, Sent: 100},
			curr:     RawSample{Received: 20, Sent: 150},
			expected: Delta{Received: 20, Sent: 150},
		},
		{
			name:     "only sent reset",
			prev:     RawSample{Received: 500, Sent: 100},
			curr:     RawSample{Received: 600, Sent: 5},
			expected: Delta{Received: 600, Sent: 5},
		},
		{
			name:     "reset to zero",
			prev:     RawSample{Received: 500, Sent: 100},
			curr:     RawSample{Received: 0, Sent: 0},
			expected: Delta{Received: 0, Sent: 0},
		},
		{
			name:     "fresh epoch from zero baseline",
			prev:     RawSample{},
			curr:     RawSample{Received: 42, Sent: 7},
			expected: Delta{Received: 42, Sent: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Reconcile(tt.prev, tt.curr))
		})
	}
}

func TestReconcile_NeverNegative(t *testing.T) {
	// The delta is uint64, so "non-negative" here means no wraparound:
	// every branch must produce fields no larger than the inputs allow.
	samples := []RawSample{
		{Received: 0, Sent: 0},
		{Received: 1, Sent: 1},
		{Received: 1000, Sent: 2},
		{Received: 2, Sent: 1000},
		{Received: ^uint64(0), Sent: ^uint64(0)},
	}

	for _, prev := range samples {
		for _, curr := range samples {
			d := Reconcile(prev, curr)
			if curr.Received >= prev.Received && curr.Sent >= prev.Sent {
				assert.Equal(t, curr.Received-prev.Received, d.Received)
				assert.Equal(t, curr.Sent-prev.Sent, d.Sent)
			} else {
				assert.Equal(t, curr.Received, d.Received)
				assert.Equal(t, curr.Sent, d.Sent)
			}
		}
	}
}
