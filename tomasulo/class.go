package tomasulo

import "github.com/sarchlab/tomasulo/insts"

// FUClass identifies one of the seven functional-unit pipelines the
// engine schedules work onto. Reservation stations are partitioned by
// the same classes (see NewStations).
type FUClass int

const (
	ClassAddSub FUClass = iota
	ClassNand
	ClassMul
	ClassLoad
	ClassStore
	ClassBranch
	ClassCallRet
)

// String returns a short label for the class, used in snapshots and CLI
// reports.
func (c FUClass) String() string {
	switch c {
	case ClassAddSub:
		return "ADDSUB"
	case ClassNand:
		return "NAND"
	case ClassMul:
		return "MUL"
	case ClassLoad:
		return "LOAD"
	case ClassStore:
		return "STORE"
	case ClassBranch:
		return "BEQ"
	case ClassCallRet:
		return "CALLRET"
	default:
		return "UNKNOWN"
	}
}

// ClassOf maps an opcode to the functional-unit class that executes it.
// This is the dispatch table the design notes call for instead of
// subclassing the opcode.
func ClassOf(op insts.Op) FUClass {
	switch op {
	case insts.ADD, insts.SUB:
		return ClassAddSub
	case insts.NAND:
		return ClassNand
	case insts.MUL:
		return ClassMul
	case insts.LOAD:
		return ClassLoad
	case insts.STORE:
		return ClassStore
	case insts.BEQ:
		return ClassBranch
	case insts.CALL, insts.RET:
		return ClassCallRet
	default:
		panic("tomasulo: unknown opcode in ClassOf")
	}
}

// LatencyTable holds the fixed dispatch-to-completion latency, in
// cycles, for every functional-unit class. WithLatencyTable lets a
// caller override the defaults (for experimentation, not for
// correctness — the scenarios in scenarios_test.go assume the
// defaults).
type LatencyTable struct {
	AddSub  int
	Nand    int
	Mul     int
	Load    int
	Store   int
	Branch  int
	CallRet int
}

// DefaultLatencyTable returns the standard per-class latencies.
func DefaultLatencyTable() LatencyTable {
	return LatencyTable{
		AddSub:  2,
		Nand:    1,
		Mul:     12,
		Load:    6,
		Store:   6,
		Branch:  1,
		CallRet: 1,
	}
}

func (t LatencyTable) forClass(c FUClass) int {
	switch c {
	case ClassAddSub:
		return t.AddSub
	case ClassNand:
		return t.Nand
	case ClassMul:
		return t.Mul
	case ClassLoad:
		return t.Load
	case ClassStore:
		return t.Store
	case ClassBranch:
		return t.Branch
	case ClassCallRet:
		return t.CallRet
	default:
		panic("tomasulo: unknown class in LatencyTable.forClass")
	}
}

// unitsPerClass is the fixed number of functional-unit pipelines per
// class.
var unitsPerClass = map[FUClass]int{
	ClassAddSub:  4,
	ClassNand:    2,
	ClassMul:     1,
	ClassLoad:    2,
	ClassStore:   1,
	ClassBranch:  2,
	ClassCallRet: 1,
}
