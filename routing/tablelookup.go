package routing

import (
	"fmt"
	"math"
)

// lookupRoutingTable finds the output link whose destination set intersects
// the query set with the minimum weight. Weights are how the topology builder
// biases turns for deadlock avoidance, so they are honored exactly. On an
// ordered virtual network ties resolve to the lowest link index so that every
// packet for the same destination takes the same path; on an unordered
// network the tie is broken uniformly at random.
func (r *Resolver) lookupRoutingTable(
	vnet VirtualNetID,
	dest DestinationSet,
) (LinkID, error) {
	row := r.table.row(vnet)

	minWeight := math.MaxInt
	for link, stored := range row {
		if !stored.Overlaps(dest) {
			continue
		}

		if w := r.table.WeightOf(LinkID(link)); w < minWeight {
			minWeight = w
		}
	}

	var candidates []LinkID
	for link, stored := range row {
		if !stored.Overlaps(dest) {
			continue
		}

		if r.table.WeightOf(LinkID(link)) == minWeight {
			candidates = append(candidates, LinkID(link))
		}
	}

	if len(candidates) == 0 {
		return 0, fmt.Errorf(
			"%w: router %d, virtual network %d",
			ErrNoRoute, r.routerID, vnet)
	}

	chosen := 0
	if !r.ordered[vnet] {
		chosen = r.source.Intn(len(candidates))
	}

	return candidates[chosen], nil
}
