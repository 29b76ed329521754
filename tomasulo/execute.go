package tomasulo

// dispatchReady is phase 5: every reservation station with
// both operands resolved claims a free functional unit of its class, in
// program order, until either runs out.
func (c *Core) dispatchReady() {
	for _, st := range c.stations.ReadyEntries() {
		fu := c.fus.FreeOf(st.Class)
		if fu == nil {
			continue
		}
		c.fus.Dispatch(fu, st)
		st.Executing = true
		c.timing.RecordStartExec(st.InstID, c.cycle)
	}
}

// promoteFromCDB is phases 1 and 4: grant the bus to whichever pending
// completion is oldest in ROB program order, provided nothing has
// broadcast yet this cycle. Age is judged by the ROB's OlderThan, not
// by comparing raw ROB indices — those wrap around the circular buffer,
// so a low index isn't necessarily an old one.
func (c *Core) promoteFromCDB() *FUResult {
	if c.cdb.Broadcasting() {
		return nil
	}
	pending := c.cdb.PendingSnapshot()
	if len(pending) == 0 {
		return nil
	}
	oldest := pending[0].RobIndex
	for _, r := range pending[1:] {
		if c.rob.OlderThan(r.RobIndex, oldest) {
			oldest = r.RobIndex
		}
	}
	return c.cdb.Take(oldest)
}

// applyBroadcast performs the atomic steps of a write-back for a
// completion that just won the CDB: record the result on its ROB
// entry, forward it to waiting stations, and free the producing station
// and functional unit.
func (c *Core) applyBroadcast(r *FUResult) {
	entry := c.rob.Entry(r.RobIndex)
	entry.Ready = true
	applyResultToEntry(entry, r)

	c.stations.ApplyBroadcast(r.RobIndex, r.Value)
	c.stations.FreeByDestROB(r.RobIndex)
	c.fus.FreeByRobIndex(r.RobIndex)
	c.timing.RecordWrite(r.InstID, c.cycle)
}
