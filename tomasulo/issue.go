package tomasulo

import "github.com/sarchlab/tomasulo/insts"

// issue is phase 8: at most one instruction, the one at the
// current PC, is issued this cycle, provided a ROB slot and a station
// of its class are both free and no unresolved RET is blocking issue.
func (c *Core) issue() {
	if c.retOutstanding {
		return
	}
	if c.pc >= len(c.program) {
		return
	}

	inst := c.program[c.pc]

	if c.rob.Full() {
		c.stats.IssueStalls++
		return
	}
	class := ClassOf(inst.Op)
	st := c.stations.FreeOf(class)
	if st == nil {
		c.stats.IssueStalls++
		return
	}

	robIdx := c.rob.Alloc()
	entry := c.rob.Entry(robIdx)
	entry.Valid = true
	entry.InstID = inst.ID
	entry.Op = inst.Op
	entry.Dest = destRegister(inst)
	entry.Speculative = len(c.unresolvedBranches) > 0

	st.resetIdle()
	st.Busy = true
	st.Op = inst.Op
	st.InstID = inst.ID
	st.PC = inst.PC
	st.DestROB = robIdx
	st.IssueCycle = c.cycle
	st.HasImm = inst.HasImm
	st.Imm = inst.Imm
	st.Target = inst.Target

	c.captureOperands(st, inst)

	if entry.Dest != noDest {
		c.rat.Rename(uint8(entry.Dest), robIdx)
	}

	switch inst.Op {
	case insts.BEQ:
		entry.PredictedNextPC = inst.PC + 1
		c.pc = inst.PC + 1
		c.unresolvedBranches = append(c.unresolvedBranches, robIdx)
	case insts.CALL:
		entry.PredictedNextPC = inst.Target
		c.pc = inst.Target
	case insts.RET:
		c.retOutstanding = true
	default:
		entry.PredictedNextPC = inst.PC + 1
		c.pc = inst.PC + 1
	}

	c.lastIssuedID = inst.ID
	c.timing.RecordIssue(inst.ID, c.cycle)
}

// destRegister returns the architectural register op writes on commit,
// or noDest if it writes none.
func destRegister(inst insts.Instruction) int {
	switch inst.Op {
	case insts.ADD, insts.SUB, insts.NAND, insts.MUL, insts.LOAD:
		return int(inst.RA)
	case insts.CALL:
		return 1
	default:
		return noDest
	}
}

// captureOperands fills st's Vj/Qj and Vk/Qk from the instruction's
// source registers, per opcode.
func (c *Core) captureOperands(st *Station, inst insts.Instruction) {
	switch inst.Op {
	case insts.ADD, insts.SUB, insts.NAND, insts.MUL:
		c.captureSource(&st.Vj, &st.Qj, inst.RB)
		c.captureSource(&st.Vk, &st.Qk, inst.RC)
	case insts.LOAD:
		c.captureSource(&st.Vj, &st.Qj, inst.RB)
	case insts.STORE:
		c.captureSource(&st.Vj, &st.Qj, inst.RB)
		c.captureSource(&st.Vk, &st.Qk, inst.RA)
	case insts.BEQ:
		c.captureSource(&st.Vj, &st.Qj, inst.RA)
		c.captureSource(&st.Vk, &st.Qk, inst.RB)
	case insts.RET:
		c.captureSource(&st.Vj, &st.Qj, 1)
	case insts.CALL:
		// No source operands.
	}
}

// captureSource resolves one source register through the RAT: if the
// register is architectural (or its producer's ROB entry is already
// ready) the value is captured directly; otherwise the producing ROB
// index is recorded as a tag to wait on.
func (c *Core) captureSource(v *uint16, q *int, reg uint8) {
	if robIdx, renamed := c.rat.Lookup(reg); renamed {
		entry := c.rob.Entry(robIdx)
		if entry.Valid && entry.Ready {
			*v = entry.Value
			*q = noTag
		} else {
			*q = robIdx
		}
		return
	}
	*v = c.regs.Read(reg)
	*q = noTag
}
