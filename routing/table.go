package routing

import "fmt"

// A Table is the read-only routing table of one router: per virtual network,
// the destination set each link can reach, plus one weight per link. Tables
// are produced by a TableBuilder during topology setup and never change
// afterwards.
type Table struct {
	rows    [][]DestinationSet
	weights []int
}

// NumVirtualNets returns the number of virtual networks the table has rows
// for.
func (t *Table) NumVirtualNets() int {
	return len(t.rows)
}

// NumLinks returns the number of links in one virtual network's row. Rows may
// have different lengths across virtual networks.
func (t *Table) NumLinks(vnet VirtualNetID) int {
	if int(vnet) >= len(t.rows) {
		return 0
	}

	return len(t.rows[vnet])
}

// NumWeights returns the number of weighted links.
func (t *Table) NumWeights() int {
	return len(t.weights)
}

// WeightOf returns the weight of a link.
func (t *Table) WeightOf(link LinkID) int {
	return t.weights[link]
}

// DestinationsOf returns the destination set stored for a link in a virtual
// network's row.
func (t *Table) DestinationsOf(
	vnet VirtualNetID,
	link LinkID,
) DestinationSet {
	return t.rows[vnet][link]
}

func (t *Table) row(vnet VirtualNetID) []DestinationSet {
	if int(vnet) < 0 || int(vnet) >= len(t.rows) {
		return nil
	}

	return t.rows[vnet]
}

// A TableBuilder accumulates routes and link weights during topology setup.
// AddRoute and AddWeight must be called in matching pairs per link so that
// link indices stay consistent between the routing table and the weight
// table.
type TableBuilder struct {
	rows     [][]DestinationSet
	weights  []int
	numLinks int
}

// NewTableBuilder creates an empty TableBuilder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// AddRoute appends one new link's destination set to every virtual network's
// row. perVnet is indexed by virtual network. Rows are created the first time
// a higher virtual network index is seen; a row entry that no later AddRoute
// call covers stays the empty set.
func (b *TableBuilder) AddRoute(perVnet []DestinationSet) {
	for len(b.rows) < len(perVnet) {
		b.rows = append(b.rows, nil)
	}

	for v := range perVnet {
		b.rows[v] = append(b.rows[v], perVnet[v])
	}

	b.numLinks++
}

// AddWeight appends the weight of the next link, in the same call order as
// AddRoute.
func (b *TableBuilder) AddWeight(weight int) {
	b.weights = append(b.weights, weight)
}

// Build validates the accumulated routes and weights and returns an immutable
// Table. It panics if AddRoute and AddWeight were not called in matching
// pairs.
func (b *TableBuilder) Build() *Table {
	b.weightsMustMatchRoutes()

	t := &Table{
		rows:    make([][]DestinationSet, len(b.rows)),
		weights: append([]int(nil), b.weights...),
	}
	for v, row := range b.rows {
		t.rows[v] = append([]DestinationSet(nil), row...)
	}

	return t
}

func (b *TableBuilder) weightsMustMatchRoutes() {
	if len(b.weights) != b.numLinks {
		panic(fmt.Sprintf(
			"routing table has %d links but weight table has %d entries",
			b.numLinks, len(b.weights)))
	}

	for v, row := range b.rows {
		if len(row) > len(b.weights) {
			panic(fmt.Sprintf(
				"virtual network %d has %d links but only %d weights exist",
				v, len(row), len(b.weights)))
		}
	}
}
