package beam

// A CounterSink accepts additive updates to named monotonic counters. A single CounterSink
// is shared by every reader constructed for a work item, and may be shared across work
// items; implementations must tolerate concurrent Inc calls without external coordination.
type CounterSink interface {
	Inc(name string, delta int64)
}
