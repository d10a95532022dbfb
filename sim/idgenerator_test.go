package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IDGenerator", func() {
	It("should generate sequential IDs", func() {
		g := &sequentialIDGenerator{}

		Expect(g.Generate()).To(Equal("1"))
		Expect(g.Generate()).To(Equal("2"))
	})

	It("should generate unique IDs in parallel mode", func() {
		g := parallelIDGenerator{}

		a, b := g.Generate(), g.Generate()

		Expect(a).To(HaveLen(20))
		Expect(a).NotTo(Equal(b))
	})

	It("should not switch generators after one is used", func() {
		GetIDGenerator()

		Expect(UseParallelIDGenerator).To(Panic())
		Expect(UseSequentialIDGenerator).To(Panic())
	})
})
