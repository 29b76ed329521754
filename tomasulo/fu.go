package tomasulo

import (
	"github.com/sarchlab/tomasulo/emu"
	"github.com/sarchlab/tomasulo/insts"
)

// FU is one functional-unit pipeline instance. It captures its operands
// from the feeding station at dispatch and is otherwise opaque
// to that station until write-back frees it.
type FU struct {
	Class FUClass

	Busy      bool
	Remaining int

	RobIndex int
	InstID   int
	Op       insts.Op
	PC       int

	Vj, Vk uint16
	Imm    int16
	HasImm bool
	Target int
}

func (u *FU) reset() {
	*u = FU{Class: u.Class}
}

// FUResult is the outcome a functional unit produces on completion,
// fed to the CDB's pending queue. Which fields are meaningful mirrors
// ROBEntry: see its doc comment.
type FUResult struct {
	RobIndex int
	InstID   int
	Op       insts.Op

	Value uint16

	StoreAddr  uint64
	StoreValue uint16

	Taken  bool
	Target int
}

// FUPool is the fixed set of functional-unit pipelines: 4 ADD/SUB,
// 2 NAND, 1 MUL, 2 LOAD, 1 STORE, 2 BEQ, 1 CALL/RET.
type FUPool struct {
	units   []*FU
	latency LatencyTable
	mem     *emu.Memory
}

// NewFUPool returns a pool with every unit idle. mem is read at LOAD
// completion, not when the address is computed at dispatch.
func NewFUPool(mem *emu.Memory, latency LatencyTable) *FUPool {
	var units []*FU
	for _, class := range []FUClass{ClassAddSub, ClassNand, ClassMul, ClassLoad, ClassStore, ClassBranch, ClassCallRet} {
		for i := 0; i < unitsPerClass[class]; i++ {
			units = append(units, &FU{Class: class})
		}
	}
	return &FUPool{units: units, latency: latency, mem: mem}
}

// Reset idles every unit.
func (p *FUPool) Reset() {
	for _, u := range p.units {
		u.reset()
	}
}

// AnyBusy reports whether any unit currently holds work.
func (p *FUPool) AnyBusy() bool {
	for _, u := range p.units {
		if u.Busy {
			return true
		}
	}
	return false
}

// FreeOf returns an idle unit of the given class, or nil.
func (p *FUPool) FreeOf(class FUClass) *FU {
	for _, u := range p.units {
		if u.Class == class && !u.Busy {
			return u
		}
	}
	return nil
}

// Dispatch claims u for st: captures operands, starts the latency
// countdown, and marks u busy.
func (p *FUPool) Dispatch(u *FU, st *Station) {
	u.Busy = true
	u.Remaining = p.latency.forClass(u.Class)
	u.RobIndex = st.DestROB
	u.InstID = st.InstID
	u.Op = st.Op
	u.PC = st.PC
	u.Vj, u.Vk = st.Vj, st.Vk
	u.Imm, u.HasImm = st.Imm, st.HasImm
	u.Target = st.Target
}

// Tick decrements every busy unit's remaining latency by one and
// returns the results of units that complete this cycle.
// A unit that already completed and is awaiting write-back (Remaining
// == 0 but still Busy) is left alone — it is only freed by write-back.
func (p *FUPool) Tick() []FUResult {
	var done []FUResult
	for _, u := range p.units {
		if !u.Busy || u.Remaining <= 0 {
			continue
		}
		u.Remaining--
		if u.Remaining == 0 {
			done = append(done, p.compute(u))
		}
	}
	return done
}

func (p *FUPool) compute(u *FU) FUResult {
	r := FUResult{RobIndex: u.RobIndex, InstID: u.InstID, Op: u.Op}
	switch u.Op {
	case insts.ADD:
		r.Value = u.Vj + u.Vk
	case insts.SUB:
		r.Value = u.Vj - u.Vk
	case insts.NAND:
		r.Value = ^(u.Vj & u.Vk)
	case insts.MUL:
		r.Value = uint16(uint32(u.Vj) * uint32(u.Vk))
	case insts.LOAD:
		addr := uint64(int64(u.Vj) + int64(u.Imm))
		r.Value = p.mem.Read(addr)
	case insts.STORE:
		r.StoreAddr = uint64(int64(u.Vj) + int64(u.Imm))
		r.StoreValue = u.Vk
	case insts.BEQ:
		r.Taken = u.Vj == u.Vk
		if r.Taken {
			r.Target = u.PC + 1 + int(u.Imm)
		} else {
			r.Target = u.PC + 1
		}
	case insts.CALL:
		r.Value = uint16(u.PC + 1)
		r.Target = u.Target
	case insts.RET:
		r.Target = int(u.Vj)
	}
	return r
}

// FreeByRobIndex idles the completed unit that produced robIndex's
// result.
func (p *FUPool) FreeByRobIndex(robIndex int) {
	for _, u := range p.units {
		if u.Busy && u.RobIndex == robIndex {
			u.reset()
			return
		}
	}
}

// FlushDiscarded cancels the in-flight work of every unit feeding a
// discarded ROB index.
func (p *FUPool) FlushDiscarded(discarded map[int]bool) {
	for _, u := range p.units {
		if u.Busy && discarded[u.RobIndex] {
			u.reset()
		}
	}
}

// FUSnapshot is the deep-copied, read-only view of one functional unit.
type FUSnapshot struct {
	Class     FUClass
	Busy      bool
	Remaining int
	RobIndex  int
	InstID    int
}

// Snapshot returns a deep copy of every unit's public state.
func (p *FUPool) Snapshot() []FUSnapshot {
	out := make([]FUSnapshot, len(p.units))
	for i, u := range p.units {
		out[i] = FUSnapshot{Class: u.Class, Busy: u.Busy, Remaining: u.Remaining, RobIndex: u.RobIndex, InstID: u.InstID}
	}
	return out
}
