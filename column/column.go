/*
=================================================================================
CORTICAL COLUMN — FIXED-WIRING RECOGNITION CLUSTER
=================================================================================

The teacher carries no cortical-column type of its own; its closest analogue
is component/component.go's BaseComponent/registry pattern, which builds a
cluster of wired, independently identified units at construction time and
hands back opaque ids rather than pointers into private state. A Column here
follows that same shape but flattened onto a single shared network.Network:
it is nothing but a handful of types.NeuronID values recorded after asking
the Network to add and connect neurons — the column itself owns no
simulation state at all; everything it names lives in the Network's arenas.

The wiring density and weights below (input->pyramidal ~40% at +5,
pyramidal->output convergence at +1, pyramidal->inhibitory at +1,
inhibitory->pyramidal at -2, pyramidal<->pyramidal recurrent ~10% at +1) are
the contract's fixed numbers; the specific neuron threshold/leak/refractory
constants and population sizes are left open by the contract, fixed here as
named constants and recorded in the project's grounding ledger.
=================================================================================
*/
package column

import (
	"github.com/sparknet/core/network"
	"github.com/sparknet/core/rng"
	"github.com/sparknet/core/types"
)

// Population sizes and per-layer LIF tuning. Not named explicitly by the
// specification beyond "INPUT_N input neurons, PYR_N pyramidal neurons";
// chosen to give the output neuron's +1-per-pyramidal convergence a
// workable margin against the ~40% feed-forward and ~10% recurrent densities.
const (
	InputN                    = 6
	PyramidalN                = 24
	InputToPyramidalDensity   = 40 // percent
	PyramidalRecurrentDensity = 10 // percent

	InputThreshold, InputLeak, InputRefractory                int32 = 20, 2, 1
	PyramidalThreshold, PyramidalLeak, PyramidalRefractory    int32 = 20, 1, 2
	OutputThreshold, OutputLeak, OutputRefractory             int32 = 10, 2, 3
	InhibitoryThreshold, InhibitoryLeak, InhibitoryRefractory int32 = 3, 0, 1

	InputToPyramidalWeight      types.Weight = 5
	PyramidalToOutputWeight     types.Weight = 1
	PyramidalToInhibitoryWeight types.Weight = 1
	InhibitoryToPyramidalWeight types.Weight = -2
	PyramidalRecurrentWeight    types.Weight = 1
)

// Column is a fixed-size recognition cluster. Its neuron ids are
// stable for its lifetime; Column stores no per-tick firing state itself —
// whether it is active on a tick is read by the UKS from the Network's
// fired_this_tick, since the Network is the sole owner of firing truth.
// Allocated, AllocatedAtTick and ActivationCount are bookkeeping fields the
// UKS writes when it allocates the column and when it recognises it.
type Column struct {
	Index int

	InputIDs      []types.NeuronID
	PyramidalIDs  []types.NeuronID
	OutputID      types.NeuronID
	InhibitoryID  types.NeuronID

	Allocated       bool
	AllocatedAtTick types.Tick
	ActivationCount int
}

// Build constructs a new, unallocated Column's fixed wiring inside net and
// returns it. seed is used only to make the ~40%/~10% sparse wiring choices
// deterministic and reproducible across runs — it is not a per-tick
// random stream, just a stable hash of (seed, column index, edge index).
func Build(net *network.Network, index int, seed uint64) *Column {
	c := &Column{Index: index}

	for i := 0; i < InputN; i++ {
		c.InputIDs = append(c.InputIDs, net.AddNeuron(types.NeuronConfig{
			Threshold: InputThreshold, Leak: InputLeak, Refractory: types.Tick(InputRefractory),
		}))
	}
	for i := 0; i < PyramidalN; i++ {
		c.PyramidalIDs = append(c.PyramidalIDs, net.AddNeuron(types.NeuronConfig{
			Threshold: PyramidalThreshold, Leak: PyramidalLeak, Refractory: types.Tick(PyramidalRefractory),
		}))
	}
	c.OutputID = net.AddNeuron(types.NeuronConfig{
		Threshold: OutputThreshold, Leak: OutputLeak, Refractory: types.Tick(OutputRefractory),
	})
	c.InhibitoryID = net.AddNeuron(types.NeuronConfig{
		Threshold: InhibitoryThreshold, Leak: InhibitoryLeak, Refractory: types.Tick(InhibitoryRefractory),
	})

	c.wire(net, seed)
	return c
}

func (c *Column) wire(net *network.Network, seed uint64) {
	// Folding the column index into the seed keeps every column's sparse
	// wiring independent even when columns share a root seed, the same way
	// a tick's noise draw is independent per neuron id (rng.NoiseRange).
	seed ^= uint64(c.Index) * 0x2545F4914F6CDD1D
	edge := uint32(0)

	for _, in := range c.InputIDs {
		for _, pyr := range c.PyramidalIDs {
			if deterministicHit(seed, edge, InputToPyramidalDensity) {
				net.Connect(in, pyr, InputToPyramidalWeight, false)
			}
			edge++
		}
	}

	for _, pyr := range c.PyramidalIDs {
		net.Connect(pyr, c.OutputID, PyramidalToOutputWeight, false)
		net.Connect(pyr, c.InhibitoryID, PyramidalToInhibitoryWeight, false)
	}
	for _, pyr := range c.PyramidalIDs {
		net.Connect(c.InhibitoryID, pyr, InhibitoryToPyramidalWeight, false)
	}

	for _, from := range c.PyramidalIDs {
		for _, to := range c.PyramidalIDs {
			if from == to {
				continue
			}
			if deterministicHit(seed, edge, PyramidalRecurrentDensity) {
				net.Connect(from, to, PyramidalRecurrentWeight, false)
			}
			edge++
		}
	}
}

// deterministicHit reports whether a given (seed, edge) pair should be wired,
// at roughly percent% density, using the same LCG-derived stream the rest of
// the engine uses for every other pseudo-random decision — never a shared,
// mutable RNG — this reuses rng.TieBreak rather than reaching for
// math/rand, so column construction is reproducible for a given seed exactly
// like a tick's noise draw is.
func deterministicHit(seed uint64, edge uint32, percent int) bool {
	draw := rng.TieBreak(seed, 0, edge) % 100
	return draw < uint64(percent)
}

// Input neuron access is exposed for the UKS, which wires the recognition
// bus and allocate-time template edges directly onto these ids.
func (c *Column) Inputs() []types.NeuronID { return c.InputIDs }
