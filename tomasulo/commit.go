package tomasulo

import "github.com/sarchlab/tomasulo/insts"

// commit is phase 7: at most one commit per cycle, and only of the
// ROB head, and only once it is ready and not speculative.
func (c *Core) commit() {
	entry := c.rob.HeadEntry()
	if entry == nil || !entry.Ready || entry.Speculative {
		return
	}

	switch entry.Op {
	case insts.ADD, insts.SUB, insts.NAND, insts.MUL, insts.LOAD, insts.CALL:
		c.regs.Write(uint8(entry.Dest), entry.Value)
		c.rat.ClearIfStillOwnedBy(uint8(entry.Dest), entry.Index)
	case insts.STORE:
		c.mem.Write(entry.StoreAddr, entry.StoreValue)
	case insts.BEQ, insts.RET:
		// No register or memory effect.
	}

	c.timing.RecordCommit(entry.InstID, c.cycle)
	c.lastCommittedID = entry.InstID
	c.stats.Instructions++
	c.rob.CommitHead()
}
