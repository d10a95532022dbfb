package amba

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AXI4 helpers", func() {
	It("should convert sizes to bytes", func() {
		Expect(XSizeToBytes(0)).To(Equal(uint64(1)))
		Expect(XSizeToBytes(2)).To(Equal(uint64(4)))
		Expect(XSizeToBytes(3)).To(Equal(uint64(8)))
	})

	DescribeTable("byte lanes",
		func(addr uint64, size uint8, want uint8) {
			Expect(ByteLanes(addr, size)).To(Equal(want))
		},
		Entry("word at lower half", uint64(0x1000), uint8(2), uint8(0x0F)),
		Entry("word at upper half", uint64(0x1004), uint8(2), uint8(0xF0)),
		Entry("byte at lane 5", uint64(0x1005), uint8(0), uint8(0x20)),
		Entry("half word unaligned rounds down", uint64(0x1003), uint8(1),
			uint8(0x0C)),
		Entry("double word", uint64(0x1000), uint8(3), uint8(0xFF)),
		Entry("double word at odd word", uint64(0x1004), uint8(3), uint8(0xFF)),
	)

	It("should advance burst addresses inside a 4 KiB block", func() {
		Expect(NextBurstAddr(0x1000, 4)).To(Equal(uint64(0x1004)))
		Expect(NextBurstAddr(0x1FF8, 8)).To(Equal(uint64(0x1000)))
		Expect(NextBurstAddr(0xABC_0000_0FFC, 4)).
			To(Equal(uint64(0xABC_0000_0000)))
	})

	It("should name responses", func() {
		Expect(RespName(RespOkay)).To(Equal("OKAY"))
		Expect(RespName(RespSlvErr)).To(Equal("SLVERR"))
		Expect(RespName(7)).To(Equal("RESP(7)"))
	})
})

var _ = Describe("Width helpers", func() {
	It("should split words", func() {
		Expect(Lower32(0xAABBCCDD_11223344)).To(Equal(uint32(0x11223344)))
		Expect(Upper32(0xAABBCCDD_11223344)).To(Equal(uint32(0xAABBCCDD)))
		Expect(LowerStrb(0xF3)).To(Equal(uint8(0x3)))
		Expect(UpperStrb(0xF3)).To(Equal(uint8(0xF)))
	})

	It("should detect strobes spanning both halves", func() {
		Expect(SpansBothHalves(0xFF)).To(BeTrue())
		Expect(SpansBothHalves(0x18)).To(BeTrue())
		Expect(SpansBothHalves(0x0F)).To(BeFalse())
		Expect(SpansBothHalves(0xF0)).To(BeFalse())
		Expect(SpansBothHalves(0x00)).To(BeFalse())
	})

	It("should merge halves", func() {
		w := MergeHalf(0, 0xCCDD, false)
		w = MergeHalf(w, 0xAABB, true)
		Expect(w).To(Equal(uint64(0x0000AABB_0000CCDD)))
		Expect(MergeHalf(w, 0x1, false)).To(Equal(uint64(0x0000AABB_00000001)))
	})

	It("should tell APB phases", func() {
		Expect(APBIn{PSel: true}.IsSetup()).To(BeTrue())
		Expect(APBIn{PSel: true, PEnable: true}.IsAccess()).To(BeTrue())
		Expect(APBIn{}.IsSetup()).To(BeFalse())
	})
})
