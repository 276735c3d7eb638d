package routing

// A DestinationSet is an opaque set of endpoints eligible to receive a
// message. Routing only ever asks whether two sets intersect.
type DestinationSet struct {
	members map[EndpointID]struct{}
}

// NewDestinationSet creates a set holding the given endpoints.
func NewDestinationSet(endpoints ...EndpointID) DestinationSet {
	s := DestinationSet{members: make(map[EndpointID]struct{}, len(endpoints))}
	for _, e := range endpoints {
		s.members[e] = struct{}{}
	}

	return s
}

// Contains reports whether the set holds the endpoint.
func (s DestinationSet) Contains(e EndpointID) bool {
	_, ok := s.members[e]
	return ok
}

// Overlaps reports whether the intersection of s and other is non-empty.
func (s DestinationSet) Overlaps(other DestinationSet) bool {
	small, large := s, other
	if len(large.members) < len(small.members) {
		small, large = large, small
	}

	for e := range small.members {
		if _, ok := large.members[e]; ok {
			return true
		}
	}

	return false
}

// Empty reports whether the set holds no endpoint.
func (s DestinationSet) Empty() bool {
	return len(s.members) == 0
}
