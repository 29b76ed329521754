package tomasulo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasulo/tomasulo"
)

var _ = Describe("RAT", func() {
	var rat *tomasulo.RAT

	BeforeEach(func() {
		rat = tomasulo.NewRAT()
	})

	It("starts with every register architectural", func() {
		for r := uint8(0); r < 8; r++ {
			_, renamed := rat.Lookup(r)
			Expect(renamed).To(BeFalse())
		}
	})

	It("renames a register to a ROB index", func() {
		rat.Rename(3, 5)
		idx, renamed := rat.Lookup(3)
		Expect(renamed).To(BeTrue())
		Expect(idx).To(Equal(5))
	})

	It("lets a newer rename silently overwrite an older one", func() {
		rat.Rename(3, 5)
		rat.Rename(3, 7)
		idx, renamed := rat.Lookup(3)
		Expect(renamed).To(BeTrue())
		Expect(idx).To(Equal(7))
	})

	It("clears back to architectural only if still owned by the given index", func() {
		rat.Rename(3, 5)
		rat.Rename(3, 7)
		rat.ClearIfStillOwnedBy(3, 5)
		idx, renamed := rat.Lookup(3)
		Expect(renamed).To(BeTrue())
		Expect(idx).To(Equal(7))

		rat.ClearIfStillOwnedBy(3, 7)
		_, renamed = rat.Lookup(3)
		Expect(renamed).To(BeFalse())
	})

	It("resets every register back to architectural", func() {
		rat.Rename(1, 2)
		rat.Reset()
		_, renamed := rat.Lookup(1)
		Expect(renamed).To(BeFalse())
	})
})
