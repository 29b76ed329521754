package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasulo/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory()
	})

	It("reads unwritten addresses as zero", func() {
		Expect(mem.Read(1000)).To(Equal(uint16(0)))
	})

	It("writes and reads back a value", func() {
		mem.Write(200, 99)
		Expect(mem.Read(200)).To(Equal(uint16(99)))
	})

	It("initializes multiple addresses from a map", func() {
		mem.Init(map[uint64]uint16{0: 10, 4: 5})
		Expect(mem.Read(0)).To(Equal(uint16(10)))
		Expect(mem.Read(4)).To(Equal(uint16(5)))
	})

	It("leaves addresses not present in Init untouched", func() {
		mem.Write(8, 3)
		mem.Init(map[uint64]uint16{0: 10})
		Expect(mem.Read(8)).To(Equal(uint16(3)))
	})

	It("resets to an empty address space", func() {
		mem.Write(0, 1)
		mem.Reset()
		Expect(mem.Read(0)).To(Equal(uint16(0)))
	})

	It("snapshot is a copy, not a live view", func() {
		mem.Write(0, 1)
		snap := mem.Snapshot()
		mem.Write(0, 2)
		Expect(snap[0]).To(Equal(uint16(1)))
		Expect(mem.Read(0)).To(Equal(uint16(2)))
	})
})
