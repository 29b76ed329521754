// Package main provides the entry point for the tomasulo simulator CLI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sarchlab/tomasulo/emu"
	"github.com/sarchlab/tomasulo/tomasulo"
)

var (
	memPath = flag.String("mem", "", "path to a JSON object of initial {address: value} memory contents")
	cycles  = flag.Int("cycles", 0, "stop after this many cycles instead of running to completion (0 = unbounded)")
	trace   = flag.Bool("trace", false, "print a one-line summary after every cycle")
	verbose = flag.Bool("v", false, "print the final register file, memory writes, and per-instruction timing")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: tomasulo [options] <program.asm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)
	source, err := os.ReadFile(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program: %v\n", err)
		os.Exit(1)
	}

	core := tomasulo.NewCore(emu.NewRegFile(), emu.NewMemory())
	if err := core.LoadProgram(string(source)); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *memPath != "" {
		values, err := loadMemoryInit(*memPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading -mem: %v\n", err)
			os.Exit(1)
		}
		if err := core.InitializeMemory(values); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing memory: %v\n", err)
			os.Exit(1)
		}
	}

	snap := run(core, programPath)
	report(snap, programPath)
}

// loadMemoryInit reads a JSON object whose keys are decimal addresses and
// whose values are the uint16 contents to seed memory with.
func loadMemoryInit(path string) (map[int64]int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var byAddr map[string]int64
	if err := json.Unmarshal(raw, &byAddr); err != nil {
		return nil, err
	}
	values := make(map[int64]int64, len(byAddr))
	for k, v := range byAddr {
		var addr int64
		if _, err := fmt.Sscanf(k, "%d", &addr); err != nil {
			return nil, fmt.Errorf("invalid address key %q: %w", k, err)
		}
		values[addr] = v
	}
	return values, nil
}

// run steps core to completion, or for the fixed cycle budget when one is
// given, printing a trace line per cycle when -trace is set.
func run(core *tomasulo.Core, programPath string) tomasulo.Snapshot {
	var snap tomasulo.Snapshot
	for i := 0; *cycles == 0 || i < *cycles; i++ {
		snap = core.StepCycle()
		if *trace {
			fmt.Printf("cycle %4d: issued=%-3d committed=%-3d rob_used=%d/%d\n",
				snap.Cycle, snap.LastIssuedID, snap.LastCommittedID,
				snap.ROB.Count, tomasulo.ROBCapacity)
		}
		if snap.Complete {
			break
		}
	}
	return snap
}

// report prints the final architectural state and run statistics.
func report(snap tomasulo.Snapshot, programPath string) {
	fmt.Printf("\nProgram: %s\n", programPath)
	fmt.Printf("Cycles: %d\n", snap.Stats.Cycles)
	fmt.Printf("Instructions: %d\n", snap.Stats.Instructions)
	fmt.Printf("CPI: %.2f\n", snap.Stats.CPI())
	fmt.Printf("Branch mispredictions: %d/%d\n", snap.Stats.BranchMispredictions, snap.Stats.BranchPredictions)
	fmt.Printf("Issue stalls: %d\n", snap.Stats.IssueStalls)
	fmt.Printf("Flushes: %d\n", snap.Stats.Flushes)

	if !*verbose {
		return
	}

	fmt.Printf("\nRegisters:\n")
	for r, v := range snap.Registers {
		fmt.Printf("  R%d = %d\n", r, v)
	}

	fmt.Printf("\nMemory (touched addresses):\n")
	addrs := make([]uint64, 0, len(snap.Memory))
	for a := range snap.Memory {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, a := range addrs {
		fmt.Printf("  [%d] = %d\n", a, snap.Memory[a])
	}

	fmt.Printf("\nPer-instruction timing (issue/start_exec/finish_exec/write/commit):\n")
	ids := make([]int, 0, len(snap.Timing))
	for id := range snap.Timing {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		t := snap.Timing[id]
		fmt.Printf("  inst %3d: %3d %3d %3d %3d %3d\n", id, t.Issue, t.StartExec, t.FinishExec, t.Write, t.Commit)
	}
}
