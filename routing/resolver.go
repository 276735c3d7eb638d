package routing

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/routeunit/directions"
)

// A Resolver makes the per-hop routing decisions of one router. It is built
// once during topology setup and read-only afterwards; the external scheduler
// calls Resolve once per packet per hop.
type Resolver struct {
	name      string
	routerID  RouterID
	table     *Table
	dirs      *directions.Registry
	algorithm Algorithm
	numCols   int
	hybrid    HybridGraph
	ordered   map[VirtualNetID]bool
	source    Source
}

// Name returns the name of the resolver.
func (r *Resolver) Name() string {
	return r.name
}

// RouterID returns the id of the router the resolver decides for.
func (r *Resolver) RouterID() RouterID {
	return r.routerID
}

// Algorithm returns the configured routing algorithm.
func (r *Resolver) Algorithm() Algorithm {
	return r.algorithm
}

// DirectionOf returns the direction label of an outbound link.
func (r *Resolver) DirectionOf(link LinkID) (directions.Direction, bool) {
	return r.dirs.DirectionOfOutbound(int(link))
}

// Resolve computes the output link the packet should take next. If the packet
// has arrived at its destination router, the routing table disambiguates
// between the endpoints attached to this router. Otherwise the configured
// algorithm decides. Resolve fails with ErrNoRoute or ErrInvariant; both
// indicate a broken topology or configuration and must not be retried.
func (r *Resolver) Resolve(q Query) (Decision, error) {
	if q.DestRouter == r.routerID {
		link, err := r.lookupRoutingTable(q.VNet, q.Dest)
		if err != nil {
			return Decision{}, err
		}

		return r.checkedDecision(Decision{Link: link})
	}

	var (
		decision Decision
		err      error
	)

	switch r.algorithm {
	case AlgorithmTable:
		decision.Link, err = r.lookupRoutingTable(q.VNet, q.Dest)
	case AlgorithmXY:
		decision.Link, err = r.outLinkXY(q)
	case AlgorithmAdaptive:
		decision, err = r.outLinkAdaptive(q)
	default:
		panic(fmt.Sprintf("algorithm %s is not dispatched", r.algorithm))
	}

	if err != nil {
		return Decision{}, err
	}

	return r.checkedDecision(decision)
}

// checkedDecision asserts the postcondition that the chosen link was
// registered during setup, either as an outbound port direction or as a
// weighted routing-table link.
func (r *Resolver) checkedDecision(d Decision) (Decision, error) {
	if d.Link < 0 {
		return Decision{}, fmt.Errorf(
			"%w: router %d resolved negative link %d",
			ErrInvariant, r.routerID, d.Link)
	}

	if _, ok := r.dirs.DirectionOfOutbound(int(d.Link)); ok {
		return d, nil
	}

	if int(d.Link) < r.table.NumWeights() {
		return d, nil
	}

	return Decision{}, fmt.Errorf(
		"%w: router %d resolved unregistered link %d",
		ErrInvariant, r.routerID, d.Link)
}

func (r *Resolver) outboundLink(d directions.Direction) (LinkID, error) {
	idx, ok := r.dirs.OutboundIndexOf(d)
	if !ok {
		return 0, fmt.Errorf(
			"%w: router %d has no outbound port in direction %s",
			ErrInvariant, r.routerID, d)
	}

	return LinkID(idx), nil
}

// A Builder can build resolvers.
type Builder struct {
	routerID     RouterID
	table        *Table
	dirs         *directions.Registry
	algorithm    Algorithm
	numCols      int
	hybrid       HybridGraph
	orderedVNets []VirtualNetID
	source       Source
}

// MakeBuilder creates a Builder with the default configuration: table-based
// routing and a randomness source seeded with 1.
func MakeBuilder() Builder {
	return Builder{algorithm: AlgorithmTable}
}

// WithRouterID sets the id of the router the resolver decides for.
func (b Builder) WithRouterID(id RouterID) Builder {
	b.routerID = id
	return b
}

// WithTable sets the routing table to consult.
func (b Builder) WithTable(t *Table) Builder {
	b.table = t
	return b
}

// WithDirections sets the port direction registry of the router.
func (b Builder) WithDirections(r *directions.Registry) Builder {
	b.dirs = r
	return b
}

// WithAlgorithm sets the routing algorithm.
func (b Builder) WithAlgorithm(a Algorithm) Builder {
	b.algorithm = a
	return b
}

// WithNumColumns sets the column count of the mesh. Required by the
// dimension-order and adaptive algorithms.
func (b Builder) WithNumColumns(n int) Builder {
	b.numCols = n
	return b
}

// WithHybridGraph sets the shortcut overlay used by the adaptive algorithm.
func (b Builder) WithHybridGraph(g HybridGraph) Builder {
	b.hybrid = g
	return b
}

// WithOrderedVirtualNets marks virtual networks whose packets must keep their
// relative order. Ties on ordered networks are broken deterministically.
func (b Builder) WithOrderedVirtualNets(vnets ...VirtualNetID) Builder {
	b.orderedVNets = vnets
	return b
}

// WithSource sets the randomness source used to break ties on unordered
// virtual networks.
func (b Builder) WithSource(s Source) Builder {
	b.source = s
	return b
}

// Build creates the resolver.
func (b Builder) Build(name string) *Resolver {
	b.tableMustBeGiven()
	b.directionsMustBeGiven()
	b.algorithmMustBeKnown()
	b.geometryMustBeConfigured()

	r := &Resolver{
		name:      name,
		routerID:  b.routerID,
		table:     b.table,
		dirs:      b.dirs,
		algorithm: b.algorithm,
		numCols:   b.numCols,
		hybrid:    b.hybrid,
		ordered:   make(map[VirtualNetID]bool),
		source:    b.source,
	}

	for _, v := range b.orderedVNets {
		r.ordered[v] = true
	}

	if r.source == nil {
		r.source = rand.New(rand.NewSource(1))
	}

	return r
}

func (b Builder) tableMustBeGiven() {
	if b.table == nil {
		panic("resolver requires a routing table to operate")
	}
}

func (b Builder) directionsMustBeGiven() {
	if b.dirs == nil {
		panic("resolver requires a direction registry to operate")
	}
}

func (b Builder) algorithmMustBeKnown() {
	if b.algorithm < 0 || b.algorithm >= numAlgorithms {
		panic(fmt.Sprintf("algorithm %d is not known", int(b.algorithm)))
	}
}

func (b Builder) geometryMustBeConfigured() {
	if b.algorithm == AlgorithmTable {
		return
	}

	if b.numCols <= 0 {
		panic(fmt.Sprintf(
			"algorithm %s requires a positive column count", b.algorithm))
	}

	if b.algorithm == AlgorithmAdaptive && b.hybrid == nil {
		panic("adaptive routing requires a hybrid connection graph")
	}
}
