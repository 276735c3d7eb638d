// Package directions maintains the mapping between symbolic port directions
// and numeric port indices on a router.
package directions

import (
	"fmt"
	"strconv"
	"strings"
)

// A Direction is the symbolic label of a router port.
type Direction string

// Canonical directions of a 2D mesh.
const (
	Local Direction = "Local"
	East  Direction = "East"
	West  Direction = "West"
	North Direction = "North"
	South Direction = "South"
)

// ShortcutIn is the inbound direction of the shared shortcut-overlay port of a
// hub router.
const ShortcutIn Direction = "ShortcutIn"

const shortcutOutPrefix = "ShortcutTo"

// ShortcutTo names the outbound direction of the shortcut link that leads to
// the given hub router.
func ShortcutTo(hub int) Direction {
	return Direction(shortcutOutPrefix + strconv.Itoa(hub))
}

// IsShortcut reports whether d belongs to the shortcut overlay, on either
// side.
func (d Direction) IsShortcut() bool {
	return d == ShortcutIn || strings.HasPrefix(string(d), shortcutOutPrefix)
}

// Opposite returns the direction a packet moving in d arrives from at the next
// router. It is only defined for the four mesh directions.
func (d Direction) Opposite() Direction {
	switch d {
	case East:
		return West
	case West:
		return East
	case North:
		return South
	case South:
		return North
	default:
		panic(fmt.Sprintf("direction %s has no opposite", d))
	}
}

// Registry records the bidirectional mapping between directions and port
// indices, separately for inbound and outbound ports. Both sides of each
// mapping are written through a single registration call, so the two maps stay
// exact inverses of each other.
type Registry struct {
	inDirToIdx  map[Direction]int
	inIdxToDir  map[int]Direction
	outDirToIdx map[Direction]int
	outIdxToDir map[int]Direction
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		inDirToIdx:  make(map[Direction]int),
		inIdxToDir:  make(map[int]Direction),
		outDirToIdx: make(map[Direction]int),
		outIdxToDir: make(map[int]Direction),
	}
}

// RegisterInbound assigns an inbound port index to a direction. Registering a
// direction or an index twice on the inbound side is a configuration error and
// panics.
func (r *Registry) RegisterInbound(d Direction, idx int) {
	register(r.inDirToIdx, r.inIdxToDir, d, idx)
}

// RegisterOutbound assigns an outbound port index to a direction. Registering
// a direction or an index twice on the outbound side is a configuration error
// and panics.
func (r *Registry) RegisterOutbound(d Direction, idx int) {
	register(r.outDirToIdx, r.outIdxToDir, d, idx)
}

func register(
	dirToIdx map[Direction]int,
	idxToDir map[int]Direction,
	d Direction,
	idx int,
) {
	if _, ok := dirToIdx[d]; ok {
		panic(fmt.Sprintf("direction %s is already registered", d))
	}

	if _, ok := idxToDir[idx]; ok {
		panic(fmt.Sprintf("port index %d is already registered", idx))
	}

	dirToIdx[d] = idx
	idxToDir[idx] = d
}

// OutboundIndexOf returns the outbound port index registered for a direction.
func (r *Registry) OutboundIndexOf(d Direction) (int, bool) {
	idx, ok := r.outDirToIdx[d]
	return idx, ok
}

// DirectionOfOutbound returns the direction registered for an outbound port
// index.
func (r *Registry) DirectionOfOutbound(idx int) (Direction, bool) {
	d, ok := r.outIdxToDir[idx]
	return d, ok
}

// InboundIndexOf returns the inbound port index registered for a direction.
func (r *Registry) InboundIndexOf(d Direction) (int, bool) {
	idx, ok := r.inDirToIdx[d]
	return idx, ok
}

// DirectionOfInbound returns the direction registered for an inbound port
// index.
func (r *Registry) DirectionOfInbound(idx int) (Direction, bool) {
	d, ok := r.inIdxToDir[idx]
	return d, ok
}

// NumOutbound returns the number of outbound ports registered so far.
func (r *Registry) NumOutbound() int {
	return len(r.outDirToIdx)
}
