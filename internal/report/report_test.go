package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shini4i/trafic/internal/store"
)

// tenDays builds day sums for 10 consecutive days, most recent first, with
// distinct per-day figures so window sums are easy to pin down.
func tenDays() []store.DaySum {
	days := make([]store.DaySum, 10)
	for i := range days {
		days[i] = store.DaySum{
			Day:      fmt.Sprintf("2026-08-%02d", 29-i),
			Received: uint64(i+1) * 100,
			Sent:     uint64(i+1) * 10,
		}
	}
	return days
}

func TestBuild_BucketBoundaries(t *testing.T) {
	r := Build(tenDays())

	// 1-day window: day[0] only.
	assert.Equal(t, Bucket{Received: 100, Sent: 10}, r.Day1)

	// 7-day window: days 0..6, i.e. 100+200+...+700.
	assert.Equal(t, Bucket{Received: 2800, Sent: 280}, r.Day7)

	// 30-day window: all 10 days since 10 < 30.
	assert.Equal(t, Bucket{Received: 5500, Sent: 550}, r.Day30)

	assert.Equal(t, Bucket{Received: 5500, Sent: 550}, r.Total)
	assert.Equal(t, 10, r.Days)
}

func TestBuild_MoreThanThirtyDays(t *testing.T) {
	days := make([]store.DaySum, 40)
	for i := range days {
		days[i] = store.DaySum{Day: fmt.Sprintf("day-%02d", i), Received: 1, Sent: 2}
	}

	r := Build(days)
	assert.Equal(t, Bucket{Received: 1, Sent: 2}, r.Day1)
	assert.Equal(t, Bucket{Received: 7, Sent: 14}, r.Day7)
	assert.Equal(t, Bucket{Received: 30, Sent: 60}, r.Day30)
	assert.Equal(t, Bucket{Received: 40, Sent: 80}, r.Total)
	assert.Equal(t, 40, r.Days)
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil)
	assert.Equal(t, Report{}, r)
}

func TestReport_Render(t *testing.T) {
	r := Build([]store.DaySum{
		{Day: "2026-08-29", Received: 1024, Sent: 512},
	})

	text := r.Render()
	assert.Contains(t, text, "Traffic statistics")
	assert.Contains(t, text, "Today:")
	assert.Contains(t, text, "Last 7 days:")
	assert.Contains(t, text, "Last 30 days:")
	assert.Contains(t, text, "TOTAL (1 days):")
	assert.Contains(t, text, "↓ 1.0 KiB")
	assert.Contains(t, text, "↑ 512.0 B")
}
