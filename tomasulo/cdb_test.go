package tomasulo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasulo/tomasulo"
)

var _ = Describe("CDB", func() {
	var cdb *tomasulo.CDB

	BeforeEach(func() {
		cdb = tomasulo.NewCDB()
	})

	It("takes a pending completion by ROB index", func() {
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 5})
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 2})
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 7})

		won := cdb.Take(2)
		Expect(won.RobIndex).To(Equal(2))
		Expect(cdb.PendingCount()).To(Equal(2))
	})

	It("returns nil for a ROB index that isn't pending", func() {
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 5})
		Expect(cdb.Take(9)).To(BeNil())
		Expect(cdb.PendingCount()).To(Equal(1))
	})

	It("broadcasts at most once per cycle until Clear", func() {
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 1})
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 2})

		first := cdb.Take(1)
		Expect(first).NotTo(BeNil())
		Expect(cdb.Broadcasting()).To(BeTrue())

		Expect(cdb.Take(2)).To(BeNil())

		cdb.Clear()
		Expect(cdb.Broadcasting()).To(BeFalse())
		second := cdb.Take(2)
		Expect(second.RobIndex).To(Equal(2))
	})

	It("drops discarded entries from the pending FIFO on flush", func() {
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 3})
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 4})
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 5})

		cdb.RemovePending(map[int]bool{4: true, 5: true})
		Expect(cdb.PendingCount()).To(Equal(1))
		Expect(cdb.PendingSnapshot()[0].RobIndex).To(Equal(3))
	})

	It("reports the last broadcast only for the cycle it happened", func() {
		cdb.Enqueue(tomasulo.FUResult{RobIndex: 9})
		cdb.Take(9)
		Expect(cdb.Snapshot().Last).NotTo(BeNil())

		cdb.Clear()
		cdb.ResetForCycle()
		Expect(cdb.Snapshot().Last).To(BeNil())
	})
})
