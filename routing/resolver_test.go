package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/routeunit/directions"
)

var _ = Describe("Resolver, table-based", func() {
	var (
		mockCtrl *gomock.Controller
		source   *MockSource
		table    *Table
		dirs     *directions.Registry
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		source = NewMockSource(mockCtrl)

		builder := NewTableBuilder()
		builder.AddRoute([]DestinationSet{NewDestinationSet(100)})
		builder.AddWeight(1)
		builder.AddRoute([]DestinationSet{NewDestinationSet(200, 201)})
		builder.AddWeight(2)
		builder.AddRoute([]DestinationSet{NewDestinationSet(200)})
		builder.AddWeight(2)
		table = builder.Build()

		dirs = directions.NewRegistry()
		dirs.RegisterOutbound(directions.Local, 0)
		dirs.RegisterOutbound(directions.East, 1)
		dirs.RegisterOutbound(directions.West, 2)
	})

	makeResolver := func(ordered bool) *Resolver {
		b := MakeBuilder().
			WithRouterID(7).
			WithTable(table).
			WithDirections(dirs).
			WithSource(source)
		if ordered {
			b = b.WithOrderedVirtualNets(0)
		}

		return b.Build("Router7.RoutingUnit")
	}

	It("should return an intersecting minimum-weight link", func() {
		r := makeResolver(true)

		decision, err := r.Resolve(Query{
			DestRouter: 3,
			VNet:       0,
			Dest:       NewDestinationSet(100),
			InDir:      directions.Local,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(decision.Link).To(Equal(LinkID(0)))
		Expect(decision.ViaShortcut).To(BeFalse())
	})

	It("should break ties by lowest link on an ordered network", func() {
		r := makeResolver(true)

		for i := 0; i < 4; i++ {
			decision, err := r.Resolve(Query{
				DestRouter: 3,
				VNet:       0,
				Dest:       NewDestinationSet(200),
				InDir:      directions.Local,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(decision.Link).To(Equal(LinkID(1)))
		}
	})

	It("should draw from the source on an unordered network", func() {
		source.EXPECT().Intn(2).Return(1)

		r := makeResolver(false)

		decision, err := r.Resolve(Query{
			DestRouter: 3,
			VNet:       0,
			Dest:       NewDestinationSet(200),
			InDir:      directions.Local,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(decision.Link).To(Equal(LinkID(2)))
	})

	It("should only ever pick links from the tie set", func() {
		source.EXPECT().Intn(2).Return(0).AnyTimes()

		r := makeResolver(false)

		decision, err := r.Resolve(Query{
			DestRouter: 3,
			VNet:       0,
			Dest:       NewDestinationSet(200),
			InDir:      directions.Local,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(decision.Link).To(Equal(LinkID(1)))
	})

	It("should fail with ErrNoRoute when nothing intersects", func() {
		r := makeResolver(true)

		_, err := r.Resolve(Query{
			DestRouter: 3,
			VNet:       0,
			Dest:       NewDestinationSet(999),
			InDir:      directions.Local,
		})

		Expect(err).To(MatchError(ErrNoRoute))
	})

	It("should fail with ErrNoRoute on an unknown virtual network", func() {
		r := makeResolver(true)

		_, err := r.Resolve(Query{
			DestRouter: 3,
			VNet:       5,
			Dest:       NewDestinationSet(100),
			InDir:      directions.Local,
		})

		Expect(err).To(MatchError(ErrNoRoute))
	})

	It("should deliver locally through the table when arrived", func() {
		r := makeResolver(true)

		decision, err := r.Resolve(Query{
			DestRouter: 7,
			VNet:       0,
			Dest:       NewDestinationSet(100),
			InDir:      directions.West,
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(decision.Link).To(Equal(LinkID(0)))
		Expect(decision.ViaShortcut).To(BeFalse())
	})
})

var _ = Describe("Resolver builder", func() {
	It("should require a table", func() {
		Expect(func() {
			MakeBuilder().
				WithDirections(directions.NewRegistry()).
				Build("R")
		}).To(Panic())
	})

	It("should require a direction registry", func() {
		table := NewTableBuilder().Build()

		Expect(func() {
			MakeBuilder().WithTable(table).Build("R")
		}).To(Panic())
	})

	It("should require a column count for mesh routing", func() {
		table := NewTableBuilder().Build()

		Expect(func() {
			MakeBuilder().
				WithTable(table).
				WithDirections(directions.NewRegistry()).
				WithAlgorithm(AlgorithmXY).
				Build("R")
		}).To(Panic())
	})

	It("should require a hybrid graph for adaptive routing", func() {
		table := NewTableBuilder().Build()

		Expect(func() {
			MakeBuilder().
				WithTable(table).
				WithDirections(directions.NewRegistry()).
				WithAlgorithm(AlgorithmAdaptive).
				WithNumColumns(4).
				Build("R")
		}).To(Panic())
	})
})
