package routing

import "github.com/sarchlab/routeunit/directions"

// A Query carries the inputs of one routing decision. Queries are built per
// hop and discarded once the decision is made.
type Query struct {
	// DestRouter is the router the packet must ultimately reach.
	DestRouter RouterID

	// VNet is the virtual network the packet travels on.
	VNet VirtualNetID

	// Dest is the set of endpoints eligible to receive the packet.
	Dest DestinationSet

	// InPort is the inbound port the packet arrived on.
	InPort int

	// InDir is the direction label of the inbound port.
	InDir directions.Direction
}

// A Decision is the outcome of one routing decision.
type Decision struct {
	// Link is the chosen output link.
	Link LinkID

	// ShortcutHub is the shortcut endpoint the packet should detour through.
	// It is only meaningful when ViaShortcut is true.
	ShortcutHub RouterID

	// ViaShortcut reports that the packet leaves through a shortcut-overlay
	// port.
	ViaShortcut bool
}
