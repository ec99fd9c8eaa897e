package meter

// RawSample is one reading of the host's cumulative traffic counters.
// The counting epoch belongs to the OS: the pair resets to zero when an
// adaptor is toggled, a driver reloads, the session restarts, or the
// machine reboots.
type RawSample struct {
	// Received is the cumulative bytes received since the epoch started.
	Received uint64
	// Sent is the cumulative bytes sent since the epoch started.
	Sent uint64
}

// Delta is the byte volume attributed to a single tick.
type Delta struct {
	Received uint64
	Sent     uint64
}

func (d *Delta) add(other Delta) {
	d.Received += other.Received
	d.Sent += other.Sent
}
