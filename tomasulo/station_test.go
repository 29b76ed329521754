package tomasulo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasulo/insts"
	"github.com/sarchlab/tomasulo/tomasulo"
)

var _ = Describe("Stations", func() {
	var stations *tomasulo.Stations

	BeforeEach(func() {
		stations = tomasulo.NewStations()
	})

	It("has exactly the 12 named stations", func() {
		snap := stations.Snapshot()
		Expect(snap).To(HaveLen(12))

		counts := map[tomasulo.FUClass]int{}
		for _, st := range snap {
			counts[st.Class]++
		}
		Expect(counts[tomasulo.ClassLoad]).To(Equal(2))
		Expect(counts[tomasulo.ClassStore]).To(Equal(1))
		Expect(counts[tomasulo.ClassBranch]).To(Equal(2))
		Expect(counts[tomasulo.ClassCallRet]).To(Equal(1))
		Expect(counts[tomasulo.ClassAddSub]).To(Equal(4))
		Expect(counts[tomasulo.ClassNand]).To(Equal(1))
		Expect(counts[tomasulo.ClassMul]).To(Equal(1))
	})

	It("returns a free station of the requested class, or nil once exhausted", func() {
		first := stations.FreeOf(tomasulo.ClassMul)
		Expect(first).NotTo(BeNil())
		first.Busy = true
		Expect(stations.FreeOf(tomasulo.ClassMul)).To(BeNil())
	})

	It("only reports entries with both operand tags resolved as ready", func() {
		st := stations.FreeOf(tomasulo.ClassAddSub)
		st.Busy = true
		st.Op = insts.ADD
		st.Qj, st.Qk = 2, -1
		Expect(stations.ReadyEntries()).To(BeEmpty())

		stations.ApplyBroadcast(2, 9)
		Expect(stations.ReadyEntries()).To(HaveLen(1))
	})

	It("orders ready entries by issue cycle, then ROB index", func() {
		older := stations.FreeOf(tomasulo.ClassAddSub)
		older.Busy, older.IssueCycle, older.DestROB = true, 1, 5

		older.Qj, older.Qk = -1, -1

		younger := stations.FreeOf(tomasulo.ClassAddSub)
		younger.Busy, younger.IssueCycle, younger.DestROB = true, 2, 1
		younger.Qj, younger.Qk = -1, -1

		ready := stations.ReadyEntries()
		Expect(ready).To(HaveLen(2))
		Expect(ready[0].DestROB).To(Equal(5))
		Expect(ready[1].DestROB).To(Equal(1))
	})

	It("idles the station feeding a written-back ROB index", func() {
		st := stations.FreeOf(tomasulo.ClassNand)
		st.Busy, st.DestROB = true, 3
		stations.FreeByDestROB(3)
		Expect(st.Busy).To(BeFalse())
	})

	It("idles every station feeding a discarded ROB index", func() {
		a := stations.FreeOf(tomasulo.ClassAddSub)
		a.Busy, a.DestROB = true, 4
		b := stations.FreeOf(tomasulo.ClassNand)
		b.Busy, b.DestROB = true, 6

		stations.ClearDestinations(map[int]bool{4: true})
		Expect(a.Busy).To(BeFalse())
		Expect(b.Busy).To(BeTrue())
	})
})
