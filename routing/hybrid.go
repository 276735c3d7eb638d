package routing

import (
	"math"
	"sort"

	"github.com/sarchlab/routeunit/directions"
)

// A HybridGraph lists, for every hub router of the shortcut overlay, the hub
// routers it is directly shortcut-connected to. The graph is supplied by the
// topology builder and read-only afterwards.
type HybridGraph map[RouterID][]RouterID

// IsHub reports whether the router is part of the shortcut overlay.
func (g HybridGraph) IsHub(r RouterID) bool {
	_, ok := g[r]
	return ok
}

// Hubs returns the hub routers in ascending order.
func (g HybridGraph) Hubs() []RouterID {
	hubs := make([]RouterID, 0, len(g))
	for h := range g {
		hubs = append(hubs, h)
	}

	sort.Slice(hubs, func(i, j int) bool { return hubs[i] < hubs[j] })

	return hubs
}

// outLinkAdaptive compares plain dimension-order routing against routing
// through the shortcut overlay and takes whichever needs fewer hops. The
// comparison is greedy and local: it never picks a path with more hops than
// dimension-order for the immediate decision, but does not guarantee a
// globally shortest path across multiple detours.
func (r *Resolver) outLinkAdaptive(q Query) (Decision, error) {
	xyHops := gridHops(r.routerID, q.DestRouter, r.numCols)

	hybridHops := math.MaxInt
	towardHub := RouterID(-1)
	targetHub := RouterID(-1)

	if r.hybrid.IsHub(r.routerID) {
		// One shortcut hop to a connected hub, then the grid.
		for _, c := range r.hybrid[r.routerID] {
			hops := gridHops(c, q.DestRouter, r.numCols) + 1
			if hops < hybridHops {
				hybridHops = hops
				towardHub = c
				targetHub = c
			}
		}
	} else {
		// Grid to a hub, one shortcut hop, then the grid again. Hubs are
		// scanned in ascending order so that equal-cost detours resolve the
		// same way on every call.
		for _, hub := range r.hybrid.Hubs() {
			toHub := gridHops(r.routerID, hub, r.numCols)

			for _, c := range r.hybrid[hub] {
				total := toHub + 1 + gridHops(c, q.DestRouter, r.numCols)
				if total < hybridHops {
					hybridHops = total
					towardHub = hub
					targetHub = c
				}
			}
		}
	}

	if hybridHops >= xyHops {
		link, err := r.outLinkXY(q)
		if err != nil {
			return Decision{}, err
		}

		return Decision{Link: link}, nil
	}

	if r.hybrid.IsHub(r.routerID) {
		link, err := r.outboundLink(directions.ShortcutTo(int(targetHub)))
		if err != nil {
			return Decision{}, err
		}

		return Decision{
			Link:        link,
			ShortcutHub: targetHub,
			ViaShortcut: true,
		}, nil
	}

	link, err := r.outboundLink(r.directionToward(towardHub))
	if err != nil {
		return Decision{}, err
	}

	return Decision{Link: link}, nil
}

// directionToward picks the mesh direction that makes progress toward dst,
// preferring x-axis progress over y-axis progress, consistent with the
// dimension-order resolver.
func (r *Resolver) directionToward(dst RouterID) directions.Direction {
	myX, myY := coordsOf(r.routerID, r.numCols)
	dstX, dstY := coordsOf(dst, r.numCols)

	switch {
	case dstX > myX:
		return directions.East
	case dstX < myX:
		return directions.West
	case dstY > myY:
		return directions.North
	default:
		return directions.South
	}
}
