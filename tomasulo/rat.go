package tomasulo

// architectural marks a RAT entry as "the register file holds the
// current value", as opposed to an index into the ROB.
const architectural = -1

// RAT is the register alias table: for each of the 8 architectural
// registers it holds either the sentinel value architectural, meaning
// the register file is current, or a ROB index that will produce the
// register's next value.
type RAT struct {
	mapping [emuRegisterCount]int
}

// emuRegisterCount mirrors emu.NumRegisters without importing emu here,
// keeping RAT free of a dependency on the architectural state package.
const emuRegisterCount = 8

// NewRAT returns a RAT with every register mapped to architectural.
func NewRAT() *RAT {
	r := &RAT{}
	r.Reset()
	return r
}

// Reset maps every register back to architectural.
func (r *RAT) Reset() {
	for i := range r.mapping {
		r.mapping[i] = architectural
	}
}

// Lookup returns the ROB index mapped to register reg, and whether the
// register is currently renamed (false means "read the register file").
func (r *RAT) Lookup(reg uint8) (robIndex int, renamed bool) {
	v := r.mapping[reg]
	if v == architectural {
		return 0, false
	}
	return v, true
}

// Rename maps register reg to robIndex, unconditionally overwriting any
// prior mapping. An older in-flight producer of reg silently becomes
// dead: it still broadcasts on the CDB, updates its own ROB entry, and
// writes the register file when it commits, but no RAT entry will ever
// point at it again, and the newer producer's later commit overwrites
// that register value (see SPEC_FULL.md Open Question (c)).
func (r *RAT) Rename(reg uint8, robIndex int) {
	r.mapping[reg] = robIndex
}

// ClearIfStillOwnedBy resets register reg back to architectural, but only
// if it still points at robIndex. This is the commit-time and
// flush-time guard that keeps a newer renaming from being clobbered by a
// stale one.
func (r *RAT) ClearIfStillOwnedBy(reg uint8, robIndex int) {
	if r.mapping[reg] == robIndex {
		r.mapping[reg] = architectural
	}
}

// Snapshot returns a copy of the current mapping; each entry is either
// architectural or a ROB index.
func (r *RAT) Snapshot() [emuRegisterCount]int {
	return r.mapping
}
