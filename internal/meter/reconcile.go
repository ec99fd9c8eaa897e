package meter

// Reconcile derives the traffic volume between two consecutive counter
// readings.
//
// When neither counter shrank, the delta is the component-wise difference:
// the counters are monotonic within a counting epoch. When either counter
// shrank, the epoch has reset and the whole current reading is credited,
// assuming the new epoch started from zero just before this tick. The exact
// in-between value is unrecoverable since the reset moment within the
// polling interval is unknown.
//
// Both fields follow the reset branch together even when only one of them
// decreased: the OS resets the pair as a unit, and splitting the policy per
// field would produce inconsistent semantics. The returned delta is always
// non-negative in both fields.
func Reconcile(prev, curr RawSample) Delta {
	if curr.Received >= prev.Received && curr.Sent >= prev.Sent {
		return Delta{
			Received: curr.Received - prev.Received,
			Sent:     curr.Sent - prev.Sent,
		}
	}
	return Delta{Received: curr.Received, Sent: curr.Sent}
}
