// Package report aggregates the traffic ledger into presentation-ready
// windows and formats byte counts for display.
package report

import (
	"fmt"
	"strings"

	"github.com/shini4i/trafic/internal/store"
)

// Bucket is one aggregation window of the traffic report.
type Bucket struct {
	Received uint64
	Sent     uint64
}

func (b *Bucket) add(d store.DaySum) {
	b.Received += d.Received
	b.Sent += d.Sent
}

// Report holds the fixed aggregation windows computed from the ledger.
type Report struct {
	Day1  Bucket
	Day7  Bucket
	Day30 Bucket
	Total Bucket
	// Days is the number of distinct days on record.
	Days int
}

// Build fills every window in a single pass over day sums ordered most
// recent first: the day at index n contributes to each window large enough
// to contain it, and every day contributes to the total.
func Build(days []store.DaySum) Report {
	var r Report
	for n, d := range days {
		if n < 1 {
			r.Day1.add(d)
		}
		if n < 7 {
			r.Day7.add(d)
		}
		if n < 30 {
			r.Day30.add(d)
		}
		r.Total.add(d)
		r.Days++
	}
	return r
}

// Render formats the report as the text printed by --statistics.
func (r Report) Render() string {
	var b strings.Builder
	b.WriteString("Traffic statistics\n")
	b.WriteString("------------------\n\n")
	writeBucket(&b, "Today:", r.Day1)
	writeBucket(&b, "Last 7 days:", r.Day7)
	writeBucket(&b, "Last 30 days:", r.Day30)
	writeBucket(&b, fmt.Sprintf("TOTAL (%d days):", r.Days), r.Total)
	return b.String()
}

func writeBucket(b *strings.Builder, title string, bucket Bucket) {
	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "    %s %s\n", IconDown, FormatBytes(bucket.Received))
	fmt.Fprintf(b, "    %s %s\n\n", IconUp, FormatBytes(bucket.Sent))
}
