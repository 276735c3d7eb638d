package routing

import "errors"

// ErrNoRoute reports that the routing table offers no admissible output link
// for a destination and virtual network. It indicates that the topology
// builder produced a disconnected or mis-weighted table, and is never
// recoverable.
var ErrNoRoute = errors.New("no route exists from this router")

// ErrInvariant reports a violated internal consistency condition, such as an
// illegal turn, a resolver invoked for the local router, or a resolved link
// that was never registered. It is never recoverable.
var ErrInvariant = errors.New("routing invariant violated")
