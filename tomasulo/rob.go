package tomasulo

import "github.com/sarchlab/tomasulo/insts"

// ROBCapacity is the fixed reorder-buffer capacity.
const ROBCapacity = 8

// noDest marks a ROB entry that writes no architectural register
// (STORE, BEQ, RET).
const noDest = -1

// ROBEntry is one in-flight instruction tracked by the reorder buffer.
// Which fields are meaningful depends on Op: arithmetic and LOAD use
// Value; STORE uses StoreAddr/StoreValue; BEQ uses Taken/Target; CALL
// uses Value (the return address written to R1) and Target (for
// reporting); RET uses Target.
type ROBEntry struct {
	Valid   bool
	Index   int
	InstID  int
	Op      insts.Op
	Dest    int
	Ready   bool
	Value   uint16

	StoreAddr  uint64
	StoreValue uint16

	Taken  bool
	Target int

	PredictedNextPC int
	Speculative     bool
}

// ROB is the fixed-capacity circular queue of in-flight instructions,
// in program order from head (oldest) to tail (newest). Entries are
// addressed by their array slot, never by pointer.
type ROB struct {
	entries [ROBCapacity]ROBEntry
	head    int
	tail    int
	count   int
}

// NewROB returns an empty reorder buffer.
func NewROB() *ROB {
	return &ROB{}
}

// Reset clears the reorder buffer back to empty.
func (r *ROB) Reset() {
	*r = ROB{}
}

// Full reports whether the buffer has no free slot for Alloc.
func (r *ROB) Full() bool {
	return r.count == ROBCapacity
}

// Empty reports whether no entry is currently in flight.
func (r *ROB) Empty() bool {
	return r.count == 0
}

// Alloc reserves the next slot at the tail and returns its index. The
// slot is reset to an empty entry carrying only its Index; the caller
// must populate the rest (including Valid) immediately.
func (r *ROB) Alloc() int {
	idx := r.tail
	r.entries[idx] = ROBEntry{Index: idx}
	r.tail = (r.tail + 1) % ROBCapacity
	r.count++
	return idx
}

// Entry returns a pointer to the entry at slot idx, valid or not.
func (r *ROB) Entry(idx int) *ROBEntry {
	return &r.entries[idx]
}

// Head returns the index of the oldest in-flight entry; callers must
// check Empty first.
func (r *ROB) Head() int {
	return r.head
}

// HeadEntry returns the oldest in-flight entry, or nil if the buffer is
// empty.
func (r *ROB) HeadEntry() *ROBEntry {
	if r.Empty() {
		return nil
	}
	return &r.entries[r.head]
}

// CommitHead frees the head entry and advances head. The caller is
// responsible for having already applied the entry's side effects.
func (r *ROB) CommitHead() {
	r.entries[r.head] = ROBEntry{}
	r.head = (r.head + 1) % ROBCapacity
	r.count--
}

// positionFromHead returns idx's distance from head in program order,
// used to compare two valid indices across the circular wraparound.
func (r *ROB) positionFromHead(idx int) int {
	return (idx - r.head + ROBCapacity) % ROBCapacity
}

// OlderThan reports whether a is strictly older (closer to head) than
// b, among currently in-flight entries.
func (r *ROB) OlderThan(a, b int) bool {
	return r.positionFromHead(a) < r.positionFromHead(b)
}

// LatestWriter returns the index of the youngest currently in-flight
// entry that writes register reg, scanning head to tail in program
// order so a later writer overrides an earlier one. Used to rebuild the
// RAT after a flush discards the entry a register's mapping pointed at.
func (r *ROB) LatestWriter(reg int) (int, bool) {
	found, ok := -1, false
	for i := 0; i < r.count; i++ {
		idx := (r.head + i) % ROBCapacity
		e := &r.entries[idx]
		if e.Valid && e.Dest == reg {
			found, ok = idx, true
		}
	}
	return found, ok
}

// DiscardAfter discards every entry strictly younger than b — from the
// slot after b through the current tail. It returns the discarded slot
// indices and rewinds the tail to b+1.
func (r *ROB) DiscardAfter(b int) []int {
	var discarded []int
	idx := (b + 1) % ROBCapacity
	for idx != r.tail {
		discarded = append(discarded, idx)
		r.entries[idx] = ROBEntry{}
		idx = (idx + 1) % ROBCapacity
	}
	r.tail = (b + 1) % ROBCapacity
	r.count -= len(discarded)
	return discarded
}

// Snapshot returns a deep copy of the buffer's public state.
func (r *ROB) Snapshot() ROBSnapshot {
	return ROBSnapshot{Entries: r.entries, Head: r.head, Tail: r.tail, Count: r.count}
}

// ROBSnapshot is the deep-copied, read-only view of a ROB returned by
// Core.Snapshot.
type ROBSnapshot struct {
	Entries [ROBCapacity]ROBEntry
	Head    int
	Tail    int
	Count   int
}
