package cairo

import (
	"github.com/consensys/gnark/frontend"

	"github.com/PolyhedraZK/ObliviousCairo/std/gather"
)

// GatherMode chooses how reads at selected addresses are built.
type GatherMode int

const (
	// GatherIndicator sums the cells weighted by an equality indicator. An
	// address outside memory reads as 0.
	GatherIndicator GatherMode = iota
	// GatherStrict uses a multiplexer that cannot be satisfied by an address
	// outside memory.
	GatherStrict
)

func (m GatherMode) String() string {
	switch m {
	case GatherIndicator:
		return "indicator"
	case GatherStrict:
		return "strict"
	}
	return "unknown"
}

// Memory is the read-only memory of a step.
type Memory struct {
	Cells []frontend.Variable
	Mode  GatherMode
}

// Load reads the cell at an address whose value the step depends on.
func (m *Memory) Load(api frontend.API, addr frontend.Variable) frontend.Variable {
	if m.Mode == GatherStrict {
		return gather.GatherMux(api, m.Cells, addr)
	}
	return gather.Gather(api, m.Cells, addr)
}

// Probe reads a candidate cell that may later be discarded by a selector. It
// always uses the indicator form, since a discarded address may be
// legitimately out of range.
func (m *Memory) Probe(api frontend.API, addr frontend.Variable) frontend.Variable {
	return gather.Gather(api, m.Cells, addr)
}

// Size returns the number of cells.
func (m *Memory) Size() int {
	return len(m.Cells)
}
