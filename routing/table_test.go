package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TableBuilder", func() {
	var builder *TableBuilder

	BeforeEach(func() {
		builder = NewTableBuilder()
	})

	It("should grow rows when a higher virtual network appears", func() {
		builder.AddRoute([]DestinationSet{NewDestinationSet(0)})
		builder.AddWeight(1)

		builder.AddRoute([]DestinationSet{
			NewDestinationSet(1),
			NewDestinationSet(2),
		})
		builder.AddWeight(2)

		table := builder.Build()

		Expect(table.NumVirtualNets()).To(Equal(2))
		Expect(table.NumLinks(0)).To(Equal(2))
		Expect(table.NumLinks(1)).To(Equal(1))
	})

	It("should keep the weight table matched with the longest row", func() {
		for link := 0; link < 4; link++ {
			builder.AddRoute([]DestinationSet{
				NewDestinationSet(EndpointID(link)),
				NewDestinationSet(EndpointID(link + 10)),
			})
			builder.AddWeight(link + 1)
		}

		table := builder.Build()

		Expect(table.NumWeights()).To(Equal(4))
		Expect(table.NumLinks(0)).To(Equal(table.NumWeights()))
		Expect(table.NumLinks(1)).To(Equal(table.NumWeights()))
		Expect(table.WeightOf(2)).To(Equal(3))
	})

	It("should reject unmatched AddRoute and AddWeight calls", func() {
		builder.AddRoute([]DestinationSet{NewDestinationSet(0)})

		Expect(func() { builder.Build() }).To(Panic())
	})

	It("should keep the snapshot unaffected by later additions", func() {
		builder.AddRoute([]DestinationSet{NewDestinationSet(0)})
		builder.AddWeight(1)

		table := builder.Build()

		builder.AddRoute([]DestinationSet{NewDestinationSet(1)})
		builder.AddWeight(2)

		Expect(table.NumLinks(0)).To(Equal(1))
		Expect(table.NumWeights()).To(Equal(1))
	})
})

var _ = Describe("SupportsVirtualNet", func() {
	It("should support all virtual networks when the list is empty", func() {
		Expect(SupportsVirtualNet(3, nil)).To(BeTrue())
	})

	It("should support a listed virtual network", func() {
		Expect(SupportsVirtualNet(1, []VirtualNetID{0, 1})).To(BeTrue())
	})

	It("should not support an unlisted virtual network", func() {
		Expect(SupportsVirtualNet(2, []VirtualNetID{0, 1})).To(BeFalse())
	})
})

var _ = Describe("DestinationSet", func() {
	It("should report overlap only on a shared endpoint", func() {
		a := NewDestinationSet(1, 2, 3)
		b := NewDestinationSet(3, 4)
		c := NewDestinationSet(5)

		Expect(a.Overlaps(b)).To(BeTrue())
		Expect(b.Overlaps(a)).To(BeTrue())
		Expect(a.Overlaps(c)).To(BeFalse())
	})

	It("should never overlap with the empty set", func() {
		Expect(NewDestinationSet().Overlaps(NewDestinationSet(1))).
			To(BeFalse())
		Expect(NewDestinationSet().Empty()).To(BeTrue())
	})
})
