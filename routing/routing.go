// Package routing computes, for one packet at one hop, the output link it
// should take next. It provides a weighted routing-table resolver, a
// dimension-order mesh resolver, and an adaptive resolver that can detour
// through a shortcut overlay.
package routing

// VirtualNetID identifies an independent logical channel. All virtual
// networks share the physical topology but route independently.
type VirtualNetID int

// LinkID indexes a router's ordered list of outbound links. Link indices map
// 1:1 to outbound port indices.
type LinkID int

// RouterID identifies a router in the topology.
type RouterID int

// EndpointID identifies an endpoint attached to a router.
type EndpointID int

// A Source supplies the randomness used to break ties on unordered virtual
// networks. *math/rand.Rand satisfies Source. Seeding the source makes runs
// reproducible.
type Source interface {
	Intn(n int) int
}

// SupportsVirtualNet reports whether a link restricted to the given virtual
// networks can carry traffic of vnet. An empty allowed list means the link
// serves all virtual networks.
func SupportsVirtualNet(vnet VirtualNetID, allowed []VirtualNetID) bool {
	if len(allowed) == 0 {
		return true
	}

	for _, v := range allowed {
		if v == vnet {
			return true
		}
	}

	return false
}
