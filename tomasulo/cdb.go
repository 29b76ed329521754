package tomasulo

// CDB is the common data bus: a single broadcast slot per cycle,
// backed by a FIFO of completions still waiting their turn.
// broadcasting latches true the moment something wins the slot this
// cycle, so a second completion can't also broadcast; Clear lifts the
// latch at phase 6, ready for next cycle's phase 1.
type CDB struct {
	pending      []FUResult
	broadcasting bool

	// LastBroadcast is whatever won the slot this cycle, for reporting;
	// it is not the state Take arbitrates on.
	LastBroadcast *FUResult
}

// NewCDB returns an empty, idle bus.
func NewCDB() *CDB {
	return &CDB{}
}

// Reset clears the bus back to empty.
func (c *CDB) Reset() {
	*c = CDB{}
}

// ResetForCycle clears the previous cycle's reported broadcast. Called
// at the top of StepCycle, before phase 1.
func (c *CDB) ResetForCycle() {
	c.LastBroadcast = nil
}

// Enqueue adds a functional unit's completion to the pending queue.
func (c *CDB) Enqueue(r FUResult) {
	c.pending = append(c.pending, r)
}

// Broadcasting reports whether something has already won the bus this
// cycle; a second Take call must not succeed until Clear.
func (c *CDB) Broadcasting() bool {
	return c.broadcasting
}

// PendingSnapshot returns a copy of the completions still waiting for
// the bus, for a caller to pick an arbitration winner from. The CDB
// itself holds no opinion on which pending entry is oldest — ROB index
// order wraps around the circular buffer, so only the ROB (via
// OlderThan) can judge age correctly; see Core.promoteFromCDB.
func (c *CDB) PendingSnapshot() []FUResult {
	return append([]FUResult(nil), c.pending...)
}

// Take grants the bus to the pending completion with the given ROB
// index, provided nothing has broadcast yet this cycle. It returns nil
// if the bus already broadcast this cycle or robIndex isn't pending.
func (c *CDB) Take(robIndex int) *FUResult {
	if c.broadcasting {
		return nil
	}
	for i, r := range c.pending {
		if r.RobIndex != robIndex {
			continue
		}
		c.pending = append(c.pending[:i], c.pending[i+1:]...)
		c.broadcasting = true
		c.LastBroadcast = &r
		return &r
	}
	return nil
}

// Clear lifts the single-broadcast-per-cycle latch (phase 6).
func (c *CDB) Clear() {
	c.broadcasting = false
}

// RemovePending drops every pending completion whose ROB index is
// discarded.
func (c *CDB) RemovePending(discarded map[int]bool) {
	kept := c.pending[:0]
	for _, r := range c.pending {
		if !discarded[r.RobIndex] {
			kept = append(kept, r)
		}
	}
	c.pending = kept
}

// PendingCount returns the number of completions still waiting for the
// bus.
func (c *CDB) PendingCount() int {
	return len(c.pending)
}

// CDBSnapshot is the deep-copied, read-only view of the bus.
type CDBSnapshot struct {
	Broadcasting bool
	Last         *FUResult
	PendingCount int
}

// Snapshot returns a deep copy of the bus's public state.
func (c *CDB) Snapshot() CDBSnapshot {
	var last *FUResult
	if c.LastBroadcast != nil {
		v := *c.LastBroadcast
		last = &v
	}
	return CDBSnapshot{Broadcasting: c.broadcasting, Last: last, PendingCount: len(c.pending)}
}
