package tomasulo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasulo/insts"
	"github.com/sarchlab/tomasulo/tomasulo"
)

var _ = Describe("ClassOf", func() {
	DescribeTable("maps opcodes to functional-unit classes",
		func(op insts.Op, class tomasulo.FUClass) {
			Expect(tomasulo.ClassOf(op)).To(Equal(class))
		},
		Entry("ADD", insts.ADD, tomasulo.ClassAddSub),
		Entry("SUB", insts.SUB, tomasulo.ClassAddSub),
		Entry("NAND", insts.NAND, tomasulo.ClassNand),
		Entry("MUL", insts.MUL, tomasulo.ClassMul),
		Entry("LOAD", insts.LOAD, tomasulo.ClassLoad),
		Entry("STORE", insts.STORE, tomasulo.ClassStore),
		Entry("BEQ", insts.BEQ, tomasulo.ClassBranch),
		Entry("CALL", insts.CALL, tomasulo.ClassCallRet),
		Entry("RET", insts.RET, tomasulo.ClassCallRet),
	)
})

var _ = Describe("DefaultLatencyTable", func() {
	It("matches the standard latency table", func() {
		t := tomasulo.DefaultLatencyTable()
		Expect(t.AddSub).To(Equal(2))
		Expect(t.Nand).To(Equal(1))
		Expect(t.Mul).To(Equal(12))
		Expect(t.Load).To(Equal(6))
		Expect(t.Store).To(Equal(6))
		Expect(t.Branch).To(Equal(1))
		Expect(t.CallRet).To(Equal(1))
	})
})
