package tomasulo

import (
	"sort"

	"github.com/sarchlab/tomasulo/insts"
)

// applyResultToEntry copies a functional unit's result onto its ROB
// entry, picking the fields that are meaningful for r.Op.
func applyResultToEntry(entry *ROBEntry, r *FUResult) {
	switch r.Op {
	case insts.ADD, insts.SUB, insts.NAND, insts.MUL, insts.LOAD:
		entry.Value = r.Value
	case insts.CALL:
		entry.Value = r.Value
		entry.Target = r.Target
	case insts.STORE:
		entry.StoreAddr = r.StoreAddr
		entry.StoreValue = r.StoreValue
	case insts.BEQ:
		entry.Taken = r.Taken
		entry.Target = r.Target
	case insts.RET:
		entry.Target = r.Target
	}
}

// resolveBranches is phase 3: every BEQ and RET that completed
// this cycle is reported to the ROB layer immediately, ahead of that
// cycle's CDB arbitration. A CALL needs no resolution here: its
// predicted next PC is already its target. Completions are processed oldest-ROB-entry
// first (not raw ROB index, which wraps) to match the CDB's own
// arbitration rule.
func (c *Core) resolveBranches(completions []FUResult) {
	sorted := append([]FUResult(nil), completions...)
	sort.Slice(sorted, func(i, j int) bool { return c.rob.OlderThan(sorted[i].RobIndex, sorted[j].RobIndex) })

	for _, r := range sorted {
		switch r.Op {
		case insts.BEQ:
			c.resolveBEQ(r)
		case insts.RET:
			c.resolveRET(r)
		}
	}
}

func (c *Core) resolveBEQ(r FUResult) {
	// The predictor always predicts not-taken, so a misprediction is
	// exactly a taken branch — even one whose target happens to equal
	// PC+1 (an equal-operands, zero-offset branch still counts).
	mispredicted := r.Taken

	c.removeUnresolvedBranch(r.RobIndex)
	c.stats.BranchPredictions++

	if mispredicted {
		c.stats.BranchMispredictions++
		c.stats.Flushes++

		discarded := c.rob.DiscardAfter(r.RobIndex)
		discardSet := toIndexSet(discarded)
		c.stations.ClearDestinations(discardSet)
		c.fus.FlushDiscarded(discardSet)
		c.cdb.RemovePending(discardSet)
		c.rebuildRAT(discardSet)
		for _, d := range discarded {
			c.removeUnresolvedBranch(d)
		}

		c.pc = r.Target
	} else {
		c.stats.BranchCorrect++
	}

	c.recomputeSpeculative()
}

func (c *Core) resolveRET(r FUResult) {
	entry := c.rob.Entry(r.RobIndex)
	entry.Target = r.Target
	c.pc = r.Target
	c.retOutstanding = false
}

// rebuildRAT implements spec.md §4.5 step 5: every register whose RAT
// mapping points at a just-discarded ROB entry is repointed at the
// nearest older in-flight entry still writing it, or reset to
// architectural if no such entry survives the flush. Without this, a
// discarded producer's RAT mapping dangles and the next instruction to
// rename that register (or, worse, an instruction later re-issued into
// the freed slot) captures a Q-tag that nothing will ever clear.
func (c *Core) rebuildRAT(discarded map[int]bool) {
	for reg := uint8(0); reg < emuRegisterCount; reg++ {
		robIdx, renamed := c.rat.Lookup(reg)
		if !renamed || !discarded[robIdx] {
			continue
		}
		if newest, ok := c.rob.LatestWriter(int(reg)); ok {
			c.rat.Rename(reg, newest)
		} else {
			c.rat.ClearIfStillOwnedBy(reg, robIdx)
		}
	}
}

func (c *Core) removeUnresolvedBranch(robIdx int) {
	for i, v := range c.unresolvedBranches {
		if v == robIdx {
			c.unresolvedBranches = append(c.unresolvedBranches[:i], c.unresolvedBranches[i+1:]...)
			return
		}
	}
}

// recomputeSpeculative recomputes every in-flight ROB entry's
// speculative flag from scratch against the current set of unresolved
// branches. A full recompute (at most 8 entries) is simpler and just as
// correct as an incremental update, and it stays correct even under
// nested speculation (two outstanding BEQs), which an incremental
// update would need extra bookkeeping to get right.
func (c *Core) recomputeSpeculative() {
	for i := 0; i < ROBCapacity; i++ {
		entry := c.rob.Entry(i)
		if !entry.Valid {
			continue
		}
		entry.Speculative = c.hasOlderUnresolvedBranch(entry.Index)
	}
}

func (c *Core) hasOlderUnresolvedBranch(robIdx int) bool {
	for _, b := range c.unresolvedBranches {
		if c.rob.OlderThan(b, robIdx) {
			return true
		}
	}
	return false
}

func toIndexSet(xs []int) map[int]bool {
	set := make(map[int]bool, len(xs))
	for _, x := range xs {
		set[x] = true
	}
	return set
}
