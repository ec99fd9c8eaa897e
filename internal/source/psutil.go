package source

import (
	"context"
	"fmt"

	gopsnet "github.com/shirou/gopsutil/v3/net"
)

// psutilSource reads aggregate counters through gopsutil; with pernic set
// to false the library sums every interface into a single entry.
type psutilSource struct{}

func (s *psutilSource) Sample(ctx context.Context) (uint64, uint64, error) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(counters) == 0 {
		return 0, 0, ErrUnavailable
	}
	return counters[0].BytesRecv, counters[0].BytesSent, nil
}
