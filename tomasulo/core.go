// Package tomasulo implements the per-cycle microarchitectural engine:
// reservation stations, the reorder buffer, the register alias table,
// functional units, the common data bus, and the step driver that
// advances them through one cycle at a time. Everything here is the
// hard, interesting part the surrounding CLI and parser exist to feed.
package tomasulo

import (
	"fmt"

	"github.com/sarchlab/tomasulo/emu"
	"github.com/sarchlab/tomasulo/insts"
)

// Core is the simulator's single owned aggregate (per the design notes'
// "global mutable state" guidance): every subsystem is exclusively
// mutated by StepCycle, and external callers only ever see a deep copy
// via Snapshot.
type Core struct {
	regs *emu.RegFile
	mem  *emu.Memory

	rat      *RAT
	rob      *ROB
	stations *Stations
	fus      *FUPool
	cdb      *CDB
	timing   *TimingTracker

	latency LatencyTable

	program []insts.Instruction
	pc      int
	cycle   int

	retOutstanding     bool
	unresolvedBranches []int

	lastIssuedID    int
	lastCommittedID int

	stats Statistics
}

// NewCore returns a Core over the given register file and memory, with
// no program loaded. Call LoadProgram before StepCycle.
func NewCore(regs *emu.RegFile, mem *emu.Memory, opts ...CoreOption) *Core {
	c := &Core{
		regs:            regs,
		mem:             mem,
		rat:             NewRAT(),
		rob:             NewROB(),
		stations:        NewStations(),
		cdb:             NewCDB(),
		timing:          NewTimingTracker(),
		latency:         DefaultLatencyTable(),
		lastIssuedID:    -1,
		lastCommittedID: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fus = NewFUPool(mem, c.latency)
	return c
}

// LoadProgram parses source and, on success, resets the core to a
// fresh post-load state: ROB empty, RAT all architectural, registers
// all 0, memory empty, PC = 0. On a parse failure the core is left
// untouched and a *LoadError is returned.
func (c *Core) LoadProgram(source string) error {
	result := insts.Parse(source)
	if len(result.Errors) > 0 {
		return &LoadError{Errors: result.Errors}
	}
	c.program = result.Instructions
	c.resetState()
	return nil
}

// InitializeMemory replaces the given memory addresses with the given
// values. Every address/value pair is validated before any write, so a
// rejected call leaves memory untouched.
func (c *Core) InitializeMemory(values map[int64]int64) error {
	validated := make(map[uint64]uint16, len(values))
	for addr, v := range values {
		if addr < 0 {
			return fmt.Errorf("tomasulo: memory address %d is negative: %w", addr, ErrInvalidMemoryInit)
		}
		if v < 0 || v > 0xFFFF {
			return fmt.Errorf("tomasulo: memory value %d at address %d is outside 0..65535: %w", v, addr, ErrInvalidMemoryInit)
		}
		validated[uint64(addr)] = uint16(v)
	}
	c.mem.Init(validated)
	return nil
}

// Reset clears all core state back to the state immediately following
// LoadProgram; the parsed program itself is retained.
func (c *Core) Reset() {
	c.resetState()
}

func (c *Core) resetState() {
	c.regs.Reset()
	c.mem.Reset()
	c.rat.Reset()
	c.rob.Reset()
	c.stations.Reset()
	c.fus.Reset()
	c.cdb.Reset()
	c.timing.Reset()
	c.pc = 0
	c.cycle = 0
	c.retOutstanding = false
	c.unresolvedBranches = nil
	c.lastIssuedID = -1
	c.lastCommittedID = -1
	c.stats = Statistics{}
}

// IsComplete reports whether the run has nothing left to do: the ROB is
// empty, no station or functional unit is busy, and the PC has walked
// past the last instruction.
func (c *Core) IsComplete() bool {
	if !c.rob.Empty() {
		return false
	}
	if c.stations.AnyBusy() {
		return false
	}
	if c.fus.AnyBusy() {
		return false
	}
	return c.pc >= len(c.program)
}

// StepCycle advances the core by exactly one cycle through its eight
// phases and returns the resulting snapshot. Once IsComplete is true,
// StepCycle is a no-op that returns the terminal snapshot — stepping
// past completion is not an error.
func (c *Core) StepCycle() Snapshot {
	if c.IsComplete() {
		return c.Snapshot()
	}

	c.cycle++
	c.stats.Cycles++
	c.cdb.ResetForCycle()

	// Phase 1: write-back.
	if r := c.promoteFromCDB(); r != nil {
		c.applyBroadcast(r)
	}

	// Phase 2: functional-unit tick.
	completions := c.fus.Tick()
	for _, r := range completions {
		c.timing.RecordFinishExec(r.InstID, c.cycle)
		c.cdb.Enqueue(r)
	}

	// Phase 3: branch resolution.
	c.resolveBranches(completions)

	// Phase 4: optional second write-back.
	if r := c.promoteFromCDB(); r != nil {
		c.applyBroadcast(r)
	}

	// Phase 5: start execution on ready reservation stations.
	c.dispatchReady()

	// Phase 6: CDB clear.
	c.cdb.Clear()

	// Phase 7: commit.
	c.commit()

	// Phase 8: issue.
	c.issue()

	return c.Snapshot()
}
