package tomasulo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasulo/tomasulo"
)

var _ = Describe("ROB", func() {
	var rob *tomasulo.ROB

	BeforeEach(func() {
		rob = tomasulo.NewROB()
	})

	It("starts empty", func() {
		Expect(rob.Empty()).To(BeTrue())
		Expect(rob.Full()).To(BeFalse())
	})

	It("fills up at capacity", func() {
		for i := 0; i < tomasulo.ROBCapacity; i++ {
			rob.Alloc()
		}
		Expect(rob.Full()).To(BeTrue())
	})

	It("commits the head and advances it", func() {
		first := rob.Alloc()
		rob.Alloc()
		Expect(rob.Head()).To(Equal(first))
		rob.CommitHead()
		Expect(rob.Empty()).To(BeFalse())
		Expect(rob.Head()).NotTo(Equal(first))
	})

	It("discards every entry strictly younger than b", func() {
		a := rob.Alloc()
		b := rob.Alloc()
		y1 := rob.Alloc()
		y2 := rob.Alloc()

		discarded := rob.DiscardAfter(b)

		Expect(discarded).To(ConsistOf(y1, y2))
		Expect(rob.Entry(a).Index).To(Equal(a))
		Expect(rob.Entry(y1).Valid).To(BeFalse())
		Expect(rob.Entry(y2).Valid).To(BeFalse())

		// The slot after b is free again for a fresh allocation.
		next := rob.Alloc()
		Expect(next).To(Equal(y1))
	})

	It("orders entries by distance from head across wraparound", func() {
		for i := 0; i < tomasulo.ROBCapacity-1; i++ {
			rob.Alloc()
			rob.CommitHead()
		}
		a := rob.Alloc() // the last slot
		b := rob.Alloc() // wraps around to slot 0
		Expect(rob.OlderThan(a, b)).To(BeTrue())
		Expect(rob.OlderThan(b, a)).To(BeFalse())
	})
})
