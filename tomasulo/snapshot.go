package tomasulo

import (
	"github.com/sarchlab/tomasulo/emu"
	"github.com/sarchlab/tomasulo/insts"
)

// Snapshot is the deep-copied, read-only view of the core's public
// state. Nothing in it shares memory with the running core, so a
// CLI, GUI, undo/redo stack, or test harness can retain it freely.
type Snapshot struct {
	Cycle    int
	Complete bool

	LastIssuedID    int
	LastCommittedID int

	Instructions []insts.Instruction
	Timing       map[int]InstructionTiming

	Stations [12]Station
	ROB      ROBSnapshot
	RAT      [emu.NumRegisters]int

	Registers [emu.NumRegisters]uint16
	Memory    map[uint64]uint16

	FUs []FUSnapshot
	CDB CDBSnapshot

	Stats Statistics
}

// Snapshot returns a deep copy of the core's current public state.
func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		Cycle:           c.cycle,
		Complete:        c.IsComplete(),
		LastIssuedID:    c.lastIssuedID,
		LastCommittedID: c.lastCommittedID,
		Instructions:    append([]insts.Instruction(nil), c.program...),
		Timing:          c.timing.Snapshot(),
		Stations:        c.stations.Snapshot(),
		ROB:             c.rob.Snapshot(),
		RAT:             c.rat.Snapshot(),
		Registers:       c.regs.Snapshot(),
		Memory:          c.mem.Snapshot(),
		FUs:             c.fus.Snapshot(),
		CDB:             c.cdb.Snapshot(),
		Stats:           c.stats,
	}
}
