package report

import "fmt"

const (
	// IconDown and IconUp decorate received/sent figures.
	IconDown = "↓"
	IconUp   = "↑"

	iconSep = "•"
)

// Binary prefixes in ascending order; anything past Zi lands on Yi.
var unitPrefixes = [...]string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi"}

// FormatBytes renders a byte count with one decimal digit and the largest
// binary prefix that keeps the magnitude under 1024.
func FormatBytes(n uint64) string {
	return formatBytes(float64(n))
}

func formatBytes(val float64) string {
	for _, prefix := range unitPrefixes {
		if val < 1024.0 {
			return fmt.Sprintf("%.1f %sB", val, prefix)
		}
		val /= 1024.0
	}
	return fmt.Sprintf("%.1f YiB", val)
}

// StatusLine renders the tooltip/console line for the running totals, e.g.
// "↓ 157.4 GiB • ↑ 2.1 GiB".
func StatusLine(received, sent uint64) string {
	return fmt.Sprintf("%s %s %s %s %s", IconDown, FormatBytes(received), iconSep, IconUp, FormatBytes(sent))
}
