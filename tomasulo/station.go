package tomasulo

import (
	"sort"

	"github.com/sarchlab/tomasulo/insts"
)

// noTag marks a Qj/Qk operand as resolved (no outstanding ROB
// dependency).
const noTag = -1

// Station is one named reservation station. Which operand fields are
// meaningful depends on Op: ADD/SUB/NAND/MUL use Vj/Qj and Vk/Qk for
// their two sources; LOAD uses Vj/Qj as the base register; STORE uses
// Vj/Qj as the base register and Vk/Qk as the value to store; BEQ uses
// Vj/Qj and Vk/Qk as the two compared registers; CALL uses neither;
// RET uses Vj/Qj as R1.
type Station struct {
	Name  string
	Class FUClass

	Busy      bool
	Executing bool

	Op     insts.Op
	InstID int
	PC     int

	Vj, Vk uint16
	Qj, Qk int

	HasImm bool
	Imm    int16

	// Target is the resolved label target for BEQ/CALL, -1 otherwise.
	Target int

	DestROB    int
	IssueCycle int
}

func (s *Station) resetIdle() {
	*s = Station{Name: s.Name, Class: s.Class, Qj: noTag, Qk: noTag, Target: -1}
}

// Stations is the fixed set of 12 named reservation stations: two
// LOAD, one STORE, two BEQ, one shared CALL/RET, four shared ADD/SUB,
// one NAND, one MUL.
type Stations struct {
	list [12]Station
}

// NewStations returns a Stations with every station idle.
func NewStations() *Stations {
	names := []struct {
		name  string
		class FUClass
	}{
		{"LOAD1", ClassLoad}, {"LOAD2", ClassLoad},
		{"STORE", ClassStore},
		{"BEQ1", ClassBranch}, {"BEQ2", ClassBranch},
		{"CALLRET", ClassCallRet},
		{"ADDSUB1", ClassAddSub}, {"ADDSUB2", ClassAddSub}, {"ADDSUB3", ClassAddSub}, {"ADDSUB4", ClassAddSub},
		{"NAND", ClassNand},
		{"MUL", ClassMul},
	}
	s := &Stations{}
	for i, n := range names {
		s.list[i] = Station{Name: n.name, Class: n.class, Qj: noTag, Qk: noTag, Target: -1}
	}
	return s
}

// Reset returns every station to idle.
func (s *Stations) Reset() {
	*s = *NewStations()
}

// FreeOf returns an idle station of the given class, or nil if none is
// free.
func (s *Stations) FreeOf(class FUClass) *Station {
	for i := range s.list {
		if s.list[i].Class == class && !s.list[i].Busy {
			return &s.list[i]
		}
	}
	return nil
}

// AnyBusy reports whether any station is currently occupied.
func (s *Stations) AnyBusy() bool {
	for i := range s.list {
		if s.list[i].Busy {
			return true
		}
	}
	return false
}

// ReadyEntries returns every station eligible to dispatch this cycle —
// busy, not already executing, and with both operand tags resolved —
// ordered oldest-issue-cycle-first, ROB index breaking ties.
func (s *Stations) ReadyEntries() []*Station {
	var ready []*Station
	for i := range s.list {
		st := &s.list[i]
		if st.Busy && !st.Executing && st.Qj == noTag && st.Qk == noTag {
			ready = append(ready, st)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].IssueCycle != ready[j].IssueCycle {
			return ready[i].IssueCycle < ready[j].IssueCycle
		}
		return ready[i].DestROB < ready[j].DestROB
	})
	return ready
}

// ApplyBroadcast forwards value to every station waiting on robIndex,
// clearing the corresponding operand tag.
func (s *Stations) ApplyBroadcast(robIndex int, value uint16) {
	for i := range s.list {
		st := &s.list[i]
		if st.Qj == robIndex {
			st.Vj, st.Qj = value, noTag
		}
		if st.Qk == robIndex {
			st.Vk, st.Qk = value, noTag
		}
	}
}

// FreeByDestROB idles the station feeding robIndex, if any.
func (s *Stations) FreeByDestROB(robIndex int) {
	for i := range s.list {
		if s.list[i].Busy && s.list[i].DestROB == robIndex {
			s.list[i].resetIdle()
			return
		}
	}
}

// ClearDestinations idles every station feeding a discarded ROB index.
func (s *Stations) ClearDestinations(discarded map[int]bool) {
	for i := range s.list {
		if s.list[i].Busy && discarded[s.list[i].DestROB] {
			s.list[i].resetIdle()
		}
	}
}

// Snapshot returns a deep copy of the station array.
func (s *Stations) Snapshot() [12]Station {
	return s.list
}
