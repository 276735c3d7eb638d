// Package mesh wires routing units into a rectangular mesh, optionally
// overlaid with a set of shortcut-connected hub routers. Each router attaches
// one endpoint whose id equals the router id.
package mesh

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sarchlab/routeunit/directions"
	"github.com/sarchlab/routeunit/routing"
)

// xLinkWeight and yLinkWeight bias table-based routing to resolve the x
// offset first. Unequal weights across the two dimensions are what make the
// table behave like dimension-order routing, which is deadlock-free on a
// mesh.
const (
	localLinkWeight = 1
	xLinkWeight     = 1
	yLinkWeight     = 2
	shortcutWeight  = 1
)

// A Connector builds the routing units of a mesh network. It plays the role
// of the topology builder: it registers port directions, fills routing and
// weight tables, and hands every router an immutable setup.
type Connector struct {
	width, height int
	numVNets      int
	algorithm     routing.Algorithm
	hybrid        routing.HybridGraph
	orderedVNets  []routing.VirtualNetID
	seed          int64
}

// NewConnector creates a Connector with a 1-virtual-network, table-routed,
// seed-1 default configuration.
func NewConnector() *Connector {
	return &Connector{
		numVNets:  1,
		algorithm: routing.AlgorithmTable,
		seed:      1,
	}
}

// WithSize sets the number of columns and rows of the mesh.
func (c *Connector) WithSize(width, height int) *Connector {
	c.width = width
	c.height = height
	return c
}

// WithNumVirtualNets sets the number of virtual networks.
func (c *Connector) WithNumVirtualNets(n int) *Connector {
	c.numVNets = n
	return c
}

// WithAlgorithm sets the routing algorithm of every router.
func (c *Connector) WithAlgorithm(a routing.Algorithm) *Connector {
	c.algorithm = a
	return c
}

// WithHubs marks the given routers as hubs and shortcut-connects them
// pairwise.
func (c *Connector) WithHubs(hubs ...routing.RouterID) *Connector {
	graph := make(routing.HybridGraph, len(hubs))
	sorted := append([]routing.RouterID(nil), hubs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, h := range sorted {
		// A lone hub is still a hub, just with no shortcut connections.
		graph[h] = []routing.RouterID{}

		for _, partner := range sorted {
			if partner != h {
				graph[h] = append(graph[h], partner)
			}
		}
	}

	c.hybrid = graph
	return c
}

// WithHybridGraph supplies an explicit shortcut overlay instead of the
// pairwise one WithHubs builds.
func (c *Connector) WithHybridGraph(g routing.HybridGraph) *Connector {
	c.hybrid = g
	return c
}

// WithOrderedVirtualNets marks virtual networks whose packets must keep their
// relative order.
func (c *Connector) WithOrderedVirtualNets(
	vnets ...routing.VirtualNetID,
) *Connector {
	c.orderedVNets = vnets
	return c
}

// WithSeed sets the seed of the randomness source shared by all routers.
func (c *Connector) WithSeed(seed int64) *Connector {
	c.seed = seed
	return c
}

// CreateNetwork builds one routing unit per router of the mesh, indexed by
// router id.
func (c *Connector) CreateNetwork(name string) []*routing.Resolver {
	c.sizeMustBeGiven()
	c.hubsMustBeOnGrid()

	source := rand.New(rand.NewSource(c.seed))

	resolvers := make([]*routing.Resolver, 0, c.width*c.height)
	for id := 0; id < c.width*c.height; id++ {
		resolvers = append(resolvers,
			c.buildRouter(name, routing.RouterID(id), source))
	}

	return resolvers
}

func (c *Connector) buildRouter(
	name string,
	id routing.RouterID,
	source routing.Source,
) *routing.Resolver {
	dirs := directions.NewRegistry()
	table := routing.NewTableBuilder()

	idx := 0
	for _, dir := range c.routerDirections(id) {
		dirs.RegisterOutbound(dir, idx)
		c.registerInbound(dirs, dir, idx)

		table.AddRoute(c.destinationsVia(id, dir))
		table.AddWeight(linkWeight(dir))

		idx++
	}

	builder := routing.MakeBuilder().
		WithRouterID(id).
		WithTable(table.Build()).
		WithDirections(dirs).
		WithAlgorithm(c.algorithm).
		WithNumColumns(c.width).
		WithOrderedVirtualNets(c.orderedVNets...).
		WithSource(source)

	if c.hybrid != nil {
		builder = builder.WithHybridGraph(c.hybrid)
	}

	return builder.Build(fmt.Sprintf("%s.Router%d.RoutingUnit", name, id))
}

// routerDirections lists the outbound directions of a router in link order:
// the local ejection link first, then the mesh links that exist at this
// position, then the shortcut links of a hub.
func (c *Connector) routerDirections(
	id routing.RouterID,
) []directions.Direction {
	x, y := int(id)%c.width, int(id)/c.width

	dirs := []directions.Direction{directions.Local}
	if x < c.width-1 {
		dirs = append(dirs, directions.East)
	}
	if x > 0 {
		dirs = append(dirs, directions.West)
	}
	if y < c.height-1 {
		dirs = append(dirs, directions.North)
	}
	if y > 0 {
		dirs = append(dirs, directions.South)
	}

	for _, partner := range c.hybrid[id] {
		dirs = append(dirs, directions.ShortcutTo(int(partner)))
	}

	return dirs
}

// registerInbound mirrors each outbound link with an inbound port of the same
// index. A hub has one shared inbound shortcut port at the index of its first
// shortcut link.
func (c *Connector) registerInbound(
	dirs *directions.Registry,
	dir directions.Direction,
	idx int,
) {
	if !dir.IsShortcut() {
		dirs.RegisterInbound(dir, idx)
		return
	}

	if _, ok := dirs.InboundIndexOf(directions.ShortcutIn); !ok {
		dirs.RegisterInbound(directions.ShortcutIn, idx)
	}
}

// destinationsVia computes, per virtual network, the endpoints a link can
// reach under dimension-order routing. The x links carry everything in their
// half of the grid; the y links only carry the rest of their own column;
// shortcut links carry nothing in the table and are used by the adaptive
// algorithm only.
func (c *Connector) destinationsVia(
	id routing.RouterID,
	dir directions.Direction,
) []routing.DestinationSet {
	x, y := int(id)%c.width, int(id)/c.width

	var endpoints []routing.EndpointID
	for other := 0; other < c.width*c.height; other++ {
		ox, oy := other%c.width, other/c.width

		reachable := false
		switch dir {
		case directions.Local:
			reachable = other == int(id)
		case directions.East:
			reachable = ox > x
		case directions.West:
			reachable = ox < x
		case directions.North:
			reachable = ox == x && oy > y
		case directions.South:
			reachable = ox == x && oy < y
		}

		if reachable {
			endpoints = append(endpoints, routing.EndpointID(other))
		}
	}

	perVnet := make([]routing.DestinationSet, c.numVNets)
	for v := range perVnet {
		perVnet[v] = routing.NewDestinationSet(endpoints...)
	}

	return perVnet
}

func linkWeight(dir directions.Direction) int {
	switch dir {
	case directions.Local:
		return localLinkWeight
	case directions.East, directions.West:
		return xLinkWeight
	case directions.North, directions.South:
		return yLinkWeight
	default:
		return shortcutWeight
	}
}

func (c *Connector) sizeMustBeGiven() {
	if c.width <= 0 || c.height <= 0 {
		panic("mesh size must be set before creating the network")
	}
}

func (c *Connector) hubsMustBeOnGrid() {
	for hub := range c.hybrid {
		if int(hub) < 0 || int(hub) >= c.width*c.height {
			panic(fmt.Sprintf("hub %d is outside the %dx%d mesh",
				hub, c.width, c.height))
		}
	}
}
