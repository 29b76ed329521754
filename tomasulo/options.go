package tomasulo

// Statistics holds per-run counters for reporting throughput and
// branch-prediction accuracy.
type Statistics struct {
	Cycles               uint64
	Instructions         uint64
	IssueStalls          uint64
	Flushes              uint64
	BranchPredictions    uint64
	BranchCorrect        uint64
	BranchMispredictions uint64
}

// CPI returns cycles per retired instruction, 0 if nothing has retired.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// CoreOption configures a Core at construction time.
type CoreOption func(*Core)

// WithLatencyTable overrides the default per-class functional-unit
// latencies.
func WithLatencyTable(table LatencyTable) CoreOption {
	return func(c *Core) {
		c.latency = table
	}
}

// WithTimingTracker injects a pre-built timing tracker in place of the
// one NewCore creates. LoadProgram and Reset clear whatever the tracker
// already holds. Most callers don't need this.
func WithTimingTracker(tracker *TimingTracker) CoreOption {
	return func(c *Core) {
		c.timing = tracker
	}
}
