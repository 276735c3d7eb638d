package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/routeunit/datarecording"
	"github.com/sarchlab/routeunit/directions"
	"github.com/sarchlab/routeunit/mesh"
	"github.com/sarchlab/routeunit/monitoring"
	"github.com/sarchlab/routeunit/routing"
)

var simulateFlags struct {
	width       int
	height      int
	numVNets    int
	algorithm   string
	hubs        []int
	numPackets  int
	seed        int64
	dbPath      string
	monitor     bool
	monitorPort int
}

// A packet can never need more hops than one full grid traversal per shortcut
// detour; anything beyond that indicates a routing loop.
const maxHopFactor = 4

// decisionEntry is one row of the recorded decision table.
type decisionEntry struct {
	Packet      int
	Hop         int
	Router      int
	DestRouter  int
	VNet        int
	Link        int
	Direction   string
	ShortcutHub int
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Route packets through a mesh and record every decision.",
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation()
		atexit.Exit(0)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simulateFlags.width, "width", 8, "number of mesh columns")
	f.IntVar(&simulateFlags.height, "height", 8, "number of mesh rows")
	f.IntVar(&simulateFlags.numVNets, "vnets", 2,
		"number of virtual networks")
	f.StringVar(&simulateFlags.algorithm, "algorithm", "table",
		"routing algorithm: table, xy, or adaptive")
	f.IntSliceVar(&simulateFlags.hubs, "hubs", nil,
		"hub router ids, pairwise shortcut-connected")
	f.IntVar(&simulateFlags.numPackets, "packets", 1000,
		"number of packets to route")
	f.Int64Var(&simulateFlags.seed, "seed", 1, "random seed")
	f.StringVar(&simulateFlags.dbPath, "db", os.Getenv("ROUTEUNIT_DB"),
		"database file name, auto-generated when empty")
	f.BoolVar(&simulateFlags.monitor, "monitor", false,
		"serve the routers over HTTP while simulating")
	f.IntVar(&simulateFlags.monitorPort, "monitor-port", 0,
		"port of the monitoring server")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulation() {
	routers := buildNetwork()

	if simulateFlags.monitor {
		monitor := monitoring.NewMonitor().
			WithPortNumber(simulateFlags.monitorPort)
		for _, r := range routers {
			monitor.RegisterRouter(r)
		}
		monitor.StartServer()
	}

	recorder := datarecording.New(simulateFlags.dbPath)
	recorder.CreateTable("decisions", decisionEntry{})

	src := rand.New(rand.NewSource(simulateFlags.seed))
	numRouters := simulateFlags.width * simulateFlags.height

	for packet := 0; packet < simulateFlags.numPackets; packet++ {
		from := routing.RouterID(src.Intn(numRouters))
		to := routing.RouterID(src.Intn(numRouters))
		vnet := routing.VirtualNetID(packet % simulateFlags.numVNets)

		routePacket(routers, recorder, packet, from, to, vnet)
	}

	recorder.Flush()
}

func buildNetwork() []*routing.Resolver {
	connector := mesh.NewConnector().
		WithSize(simulateFlags.width, simulateFlags.height).
		WithNumVirtualNets(simulateFlags.numVNets).
		WithAlgorithm(routing.ParseAlgorithm(simulateFlags.algorithm)).
		WithOrderedVirtualNets(0).
		WithSeed(simulateFlags.seed)

	if len(simulateFlags.hubs) > 0 {
		hubs := make([]routing.RouterID, 0, len(simulateFlags.hubs))
		for _, h := range simulateFlags.hubs {
			hubs = append(hubs, routing.RouterID(h))
		}
		connector = connector.WithHubs(hubs...)
	}

	return connector.CreateNetwork("Mesh")
}

// routePacket walks one packet from router to router until it is delivered,
// recording the decision made at every hop.
func routePacket(
	routers []*routing.Resolver,
	recorder datarecording.DataRecorder,
	packet int,
	from, to routing.RouterID,
	vnet routing.VirtualNetID,
) {
	current := from
	inDir := directions.Local
	maxHops := maxHopFactor *
		(simulateFlags.width + simulateFlags.height) *
		(1 + len(simulateFlags.hubs))

	for hop := 0; ; hop++ {
		if hop > maxHops {
			fmt.Fprintf(os.Stderr,
				"packet %d is looping between routers, giving up at %s\n",
				packet, routers[current].Name())
			atexit.Exit(1)
		}

		router := routers[current]

		decision, err := router.Resolve(routing.Query{
			DestRouter: to,
			VNet:       vnet,
			Dest:       routing.NewDestinationSet(routing.EndpointID(to)),
			InDir:      inDir,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "routing failed: %s\n", err)
			atexit.Exit(1)
		}

		recordDecision(recorder, packet, hop, router, vnet, to, decision)

		if current == to {
			return
		}

		current, inDir = nextHop(router, current, decision)
	}
}

func recordDecision(
	recorder datarecording.DataRecorder,
	packet, hop int,
	router *routing.Resolver,
	vnet routing.VirtualNetID,
	to routing.RouterID,
	decision routing.Decision,
) {
	dir, _ := router.DirectionOf(decision.Link)

	hub := -1
	if decision.ViaShortcut {
		hub = int(decision.ShortcutHub)
	}

	recorder.InsertData("decisions", decisionEntry{
		Packet:      packet,
		Hop:         hop,
		Router:      int(router.RouterID()),
		DestRouter:  int(to),
		VNet:        int(vnet),
		Link:        int(decision.Link),
		Direction:   string(dir),
		ShortcutHub: hub,
	})
}

func nextHop(
	router *routing.Resolver,
	current routing.RouterID,
	decision routing.Decision,
) (routing.RouterID, directions.Direction) {
	if decision.ViaShortcut {
		return decision.ShortcutHub, directions.ShortcutIn
	}

	dir, ok := router.DirectionOf(decision.Link)
	if !ok {
		fmt.Fprintf(os.Stderr,
			"link %d of %s has no direction\n", decision.Link, router.Name())
		atexit.Exit(1)
	}

	width := routing.RouterID(simulateFlags.width)

	switch dir {
	case directions.East:
		return current + 1, directions.West
	case directions.West:
		return current - 1, directions.East
	case directions.North:
		return current + width, directions.South
	case directions.South:
		return current - width, directions.North
	default:
		fmt.Fprintf(os.Stderr,
			"packet cannot move in direction %s from %s\n",
			dir, router.Name())
		atexit.Exit(1)
		return 0, directions.Local
	}
}
