package routing

import "fmt"

// Algorithm selects the routing strategy of a router. The set of algorithms
// is closed; the resolver dispatches over it exhaustively.
type Algorithm int

const (
	// AlgorithmTable picks the minimum-weight admissible link from the
	// routing table. It is the default.
	AlgorithmTable Algorithm = iota

	// AlgorithmXY applies dimension-order routing on a mesh.
	AlgorithmXY

	// AlgorithmAdaptive compares dimension-order routing against detours
	// through a shortcut overlay and picks whichever needs fewer hops.
	AlgorithmAdaptive

	numAlgorithms
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmTable:
		return "table"
	case AlgorithmXY:
		return "xy"
	case AlgorithmAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a configuration string to an Algorithm. Unrecognized
// values fall back to AlgorithmTable.
func ParseAlgorithm(s string) Algorithm {
	switch s {
	case "xy":
		return AlgorithmXY
	case "adaptive", "custom":
		return AlgorithmAdaptive
	default:
		return AlgorithmTable
	}
}
