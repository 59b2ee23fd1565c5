/*
=================================================================================
NEURON ARENA - FLAT LEAKY-INTEGRATE-AND-FIRE POPULATION STORE
=================================================================================

The teacher's neuron.Neuron (neuron/neuron.go) is a fully autonomous unit: its
own goroutine, its own input channel, its own dendritic/axonal sub-objects,
driven by a free-running ticker and speaking to the rest of the network only
through Output channels. That design is the right one for modeling biological
asynchrony with true Go concurrency — and the wrong one for this spec, which
requires a single, globally-ordered tick shared by every neuron, executed as
a tight, cache-friendly scan over flat arrays, owned exclusively by the
Network — concurrent step calls are disallowed.

What this package keeps from the teacher's lineage is the vocabulary
(Threshold, Leak, Refractory, "fire", "reset") and the doc-comment habit of
explaining the biological motivation for each field. What changes is the
storage shape: every neuron's state lives in struct-of-arrays form inside a
single Arena, indexed by types.NeuronID, so that the Leak and Fire phases can
be partitioned into equal contiguous ranges and handed to a worker pool
without any per-neuron allocation or pointer chasing.
=================================================================================
*/
package neuron

import "github.com/sparknet/core/types"

// Arena is the Network's flat store of every neuron's LIF state. Capacity
// grows by AddNeuron; neurons are never removed. Per-neuron outgoing
// synapse ranges — an index range [synapse_base, synapse_base+synapse_count)
// into the synapse arena — are tracked
// authoritatively by synapse.Store, which already maintains a base/count
// pair per pre-neuron id for its own contiguous-arena bookkeeping — mirroring
// that range here would just be a second, easily-desynced copy of the same
// fact, so Arena does not duplicate it.
type Arena struct {
	threshold     []int32
	leak          []int32
	refractory    []types.Tick
	charge        []types.Charge
	lastFiredTick []int64
}

// NewArena constructs an empty Arena with a pre-sized backing store.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{
		threshold:     make([]int32, 0, capacity),
		leak:          make([]int32, 0, capacity),
		refractory:    make([]types.Tick, 0, capacity),
		charge:        make([]types.Charge, 0, capacity),
		lastFiredTick: make([]int64, 0, capacity),
	}
}

// Add appends a new neuron built from cfg and returns its id. Its
// last_fired_tick is initialised to -R-1 so a fresh neuron may fire
// immediately, and its synapse range is empty until Connect is called on it.
func (a *Arena) Add(cfg types.NeuronConfig) types.NeuronID {
	id := types.NeuronID(len(a.threshold))
	a.threshold = append(a.threshold, cfg.Threshold)
	a.leak = append(a.leak, cfg.Leak)
	a.refractory = append(a.refractory, cfg.Refractory)
	a.charge = append(a.charge, 0)
	a.lastFiredTick = append(a.lastFiredTick, -int64(cfg.Refractory)-1)
	return id
}

// Len returns the number of neurons currently in the arena.
func (a *Arena) Len() int { return len(a.threshold) }

// Valid reports whether id refers to an existing neuron.
func (a *Arena) Valid(id types.NeuronID) bool {
	return int(id) < len(a.threshold)
}

// IsRefractory reports whether the neuron is refractory at currentTick:
// current_tick - last_fired_tick <= R.
func (a *Arena) IsRefractory(id types.NeuronID, currentTick types.Tick) bool {
	i := int(id)
	return int64(currentTick)-a.lastFiredTick[i] <= int64(a.refractory[i])
}

// Charge returns the neuron's current membrane potential.
func (a *Arena) Charge(id types.NeuronID) types.Charge { return a.charge[id] }

// AddCharge adds delta (may be negative) to the neuron's membrane potential,
// with no clamping — clamping is the Leak/Fire phase's responsibility, not
// charge injection's.
func (a *Arena) AddCharge(id types.NeuronID, delta int64) {
	a.charge[id] = types.Charge(int64(a.charge[id]) + delta)
}

// Threshold, Leak, Refractory, LastFiredTick are plain field accessors used
// by the Firing phase and by probes.
func (a *Arena) Threshold(id types.NeuronID) int32       { return a.threshold[id] }
func (a *Arena) Leak(id types.NeuronID) int32            { return a.leak[id] }
func (a *Arena) Refractory(id types.NeuronID) types.Tick { return a.refractory[id] }
func (a *Arena) LastFiredTick(id types.NeuronID) int64   { return a.lastFiredTick[id] }

// MarkFired resets the neuron's membrane potential to zero and records tick
// as its last firing tick, the Fire phase's per-winner side effect.
func (a *Arena) MarkFired(id types.NeuronID, tick types.Tick) {
	a.charge[id] = 0
	a.lastFiredTick[id] = int64(tick)
}

// ResetAllCharges zeroes every neuron's membrane potential without touching
// last_fired_tick, threshold, or leak — the neuron-side effect of the panic
// reset, which clears working activation but leaves refractory history and
// synapses alone.
func (a *Arena) ResetAllCharges() {
	for i := range a.charge {
		a.charge[i] = 0
	}
}

// Reset restores the neuron to its just-constructed resting state: zero
// charge, last_fired_tick = -R-1. Synapses are untouched — Reset never
// touches the Store — synapses and weights are preserved untouched.
func (a *Arena) Reset(id types.NeuronID) {
	i := int(id)
	a.charge[i] = 0
	a.lastFiredTick[i] = -int64(a.refractory[i]) - 1
}
