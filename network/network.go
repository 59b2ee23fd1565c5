/*
=================================================================================
NETWORK — THE FOUR-PHASE TICK ENGINE
=================================================================================

This is the component the teacher's architecture could not give us directly:
SynapticNetworks/temporal-neuron models a network as a graph of independently
scheduled goroutines, each with its own ticker, talking through channels. That
buys true biological asynchrony but makes "the same input sequence produces
the same output" an explicit non-goal of that design — scheduling order is
whatever the Go runtime hands out.

This engine inverts the priority: determinism first, concurrency only
where it cannot affect the result (Leak and the Firing candidate scan, both
data-parallel over disjoint neuron ranges with no cross-talk). So Network
owns every arena directly — neurons, synapses, the spike queue, the
refractory bitmap, the neuromodulator vector — and drives them through a
single exported Step method that always executes the same eight sub-steps
in the same order, parallelising only the two phases where that's safe, via
a bounded golang.org/x/sync/errgroup pool over static, precomputed
neuron-id ranges.
=================================================================================
*/
package network

import (
	"github.com/sparknet/core/metrics"
	"github.com/sparknet/core/neuromod"
	"github.com/sparknet/core/neuron"
	"github.com/sparknet/core/queue"
	"github.com/sparknet/core/rng"
	"github.com/sparknet/core/synapse"
	"github.com/sparknet/core/types"
)

// Logger is the minimal diagnostic sink a host may attach. The stdlib
// *log.Logger satisfies it trivially; the core never requires one — no
// logging framework appears anywhere in the source corpus this engine
// draws from, and the core itself never logs from its hot path.
type Logger interface {
	Printf(format string, args ...any)
}

// Network is the engine that owns every neuron, synapse, and tick.
// Concurrent Step calls on the same Network, and calls to AddNeuron/Connect
// made while a Step is in flight, are disallowed — the Network does no
// internal locking to guard against either, by design: protocol violations
// are undefined behaviour and are not checked.
type Network struct {
	neurons  *neuron.Arena
	synapses *synapse.Store
	spikes   *queue.Queue
	bitmap   *neuron.RefractoryBitmap
	chem     neuromod.Vector

	currentTick types.Tick

	firedThisTick []types.NeuronID
	firedLastTick []types.NeuronID
	firedThisMark []bool
	firedLastMark []bool

	// pendingSpikes holds ids injected via InjectSpike since the last Step
	// call. They are folded into fired_this_tick by the Firing phase of the
	// very next Step — i.e. an injection made while current_tick() reads t is
	// realised as part of tick t's own firing set, exactly like an organic
	// winner, rather than being immediately visible and then reclassified as
	// "last tick" by that same Step call's housekeeping phase.
	pendingSpikes []types.NeuronID
	pendingMark   []bool

	seed              uint64
	workers           int
	maxSpikesPerTick  int
	razorEnabled      bool
	plasticityEnabled bool
	operantMode       bool

	lastCandidateCount int

	metrics *metrics.Registry
	logger  Logger
}

// New constructs a Network sized by cfg's neuron and synapse capacities.
func New(cfg types.NetworkConfig) *Network {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	maxSpikes := cfg.MaxSpikesPerTick
	if maxSpikes <= 0 {
		maxSpikes = 1
	}
	return &Network{
		neurons:           neuron.NewArena(cfg.NeuronCapacity),
		synapses:          synapse.NewStore(cfg.SynapseCapacity),
		spikes:            queue.New(),
		bitmap:            neuron.NewRefractoryBitmap(cfg.NeuronCapacity),
		chem:              neuromod.New(),
		seed:              cfg.Seed,
		workers:           workers,
		maxSpikesPerTick:  maxSpikes,
		razorEnabled:      cfg.RazorEnabled,
		plasticityEnabled: cfg.PlasticityEnabled,
		operantMode:       cfg.OperantMode,
	}
}

// WithMetrics attaches an optional Prometheus-backed metrics.Registry.
func (n *Network) WithMetrics(reg *metrics.Registry) *Network {
	n.metrics = reg
	return n
}

// WithLogger attaches an optional diagnostic sink.
func (n *Network) WithLogger(l Logger) *Network {
	n.logger = l
	return n
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// AddNeuron appends a neuron to the population and returns its id.
func (n *Network) AddNeuron(cfg types.NeuronConfig) types.NeuronID {
	return n.neurons.Add(cfg)
}

// Connect appends a synaptic connection from -> to with the given weight and
// plasticity flag. Returns false without effect if either id is out of
// range.
func (n *Network) Connect(from, to types.NeuronID, weight types.Weight, plastic bool) bool {
	if !n.neurons.Valid(from) || !n.neurons.Valid(to) {
		return false
	}
	n.synapses.Connect(from, synapse.Synapse{
		Target:  to,
		Weight:  types.ClampWeight(int(weight)),
		Plastic: plastic,
	})
	return true
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

func (n *Network) SetPlasticityEnabled(v bool)  { n.plasticityEnabled = v }
func (n *Network) SetOperantMode(v bool)        { n.operantMode = v }
func (n *Network) SetRazorEnabled(v bool)       { n.razorEnabled = v }
func (n *Network) SetMaxSpikesPerTick(k int) {
	if k < 1 {
		k = 1
	}
	n.maxSpikesPerTick = k
}

// ---------------------------------------------------------------------------
// Probes — read only, meant to be called between ticks
// ---------------------------------------------------------------------------

func (n *Network) CurrentTick() types.Tick { return n.currentTick }

func (n *Network) DidFire(id types.NeuronID) bool {
	if int(id) >= len(n.firedThisMark) {
		return false
	}
	return n.firedThisMark[id]
}

func (n *Network) Charge(id types.NeuronID) types.Charge {
	if !n.neurons.Valid(id) {
		return 0
	}
	return n.neurons.Charge(id)
}

// FiredThisTick returns the ascending-by-id view of every neuron that fired
// in the most recently completed Step — a deterministic ordered
// representation rather than an unordered set.
func (n *Network) FiredThisTick() []types.NeuronID {
	out := make([]types.NeuronID, len(n.firedThisTick))
	copy(out, n.firedThisTick)
	return out
}

func (n *Network) SynapseWeight(from, to types.NeuronID) types.Weight {
	if !n.neurons.Valid(from) {
		return 0
	}
	return n.synapses.Weight(from, to)
}

func (n *Network) LastCandidateCount() int { return n.lastCandidateCount }

func (n *Network) Chemicals() (da, ne, serotonin, ach int) {
	return n.chem.Dopamine, n.chem.Norepinephrine, n.chem.Serotonin, n.chem.Acetylcholine
}

// BusGain is the per-tick charge the UKS should inject into each active
// recognition-bus neuron during a sustained presentation.
func (n *Network) BusGain() int32 { return n.chem.BusGain() }

// SearchDepth is the collaborator-facing traversal-depth hint.
func (n *Network) SearchDepth() int { return n.chem.SearchDepth() }

// Neurons exposes the underlying arena read-only surface to collaborating
// packages (column, uks) that need to build and wire neurons directly into
// this Network's arenas without a second copy of neuron state.
func (n *Network) Neurons() *neuron.Arena   { return n.neurons }
func (n *Network) Synapses() *synapse.Store { return n.synapses }

// ---------------------------------------------------------------------------
// Reward & modulation
// ---------------------------------------------------------------------------

func (n *Network) SpikeDopamine(d int)       { n.chem.SpikeDopamine(d) }
func (n *Network) SpikeNorepinephrine(d int) { n.chem.SpikeNorepinephrine(d) }
func (n *Network) SpikeSerotonin(d int)      { n.chem.SpikeSerotonin(d) }
func (n *Network) SpikeAcetylcholine(d int)  { n.chem.SpikeAcetylcholine(d) }

// InjectReward applies the eligibility-trace credit assignment to every
// plastic synapse in the network.
func (n *Network) InjectReward(amount int) {
	n.synapses.VisitAll(func(_ types.NeuronID, syn *synapse.Synapse) {
		synapse.Reward(syn, amount)
	})
}

// PanicReset forces the tick's startle-interrupt step outside of a regular
// Step call — a manually forced variant of that step.
func (n *Network) PanicReset() {
	n.doPanic()
}

// Reset zeroes current_tick, clears the spike queue, and resets every
// neuron's charge and last_fired_tick to its resting state. Synapses and
// weights are preserved untouched — Reset never reaches into the Store.
func (n *Network) Reset() {
	for i := 0; i < n.neurons.Len(); i++ {
		n.neurons.Reset(types.NeuronID(i))
	}
	n.spikes.Clear()
	n.firedThisTick = n.firedThisTick[:0]
	n.firedLastTick = n.firedLastTick[:0]
	for i := range n.firedThisMark {
		n.firedThisMark[i] = false
		n.firedLastMark[i] = false
	}
	n.clearPending()
	n.currentTick = 0
}

func (n *Network) clearPending() {
	n.pendingSpikes = n.pendingSpikes[:0]
	for i := range n.pendingMark {
		n.pendingMark[i] = false
	}
}

func (n *Network) doPanic() {
	n.neurons.ResetAllCharges()
	n.spikes.Clear()
	n.firedThisTick = n.firedThisTick[:0]
	n.firedLastTick = n.firedLastTick[:0]
	for i := range n.firedThisMark {
		n.firedThisMark[i] = false
	}
	for i := range n.firedLastMark {
		n.firedLastMark[i] = false
	}
	n.clearPending()
	n.chem.Panic()
	if n.metrics != nil {
		n.metrics.PanicResets.Inc()
	}
	if n.logger != nil {
		n.logger.Printf("network: panic reset at tick %d (NE saturated)", n.currentTick)
	}
}

// ---------------------------------------------------------------------------
// Spike / charge injection
// ---------------------------------------------------------------------------

// InjectSpike enqueues an externally-driven firing of id at the current tick
// and schedules it to be folded into fired_this_tick by the Firing phase of
// the next Step call, as though id had just won the Razor.
func (n *Network) InjectSpike(id types.NeuronID) {
	if !n.neurons.Valid(id) {
		return
	}
	n.growFiredMarks()
	n.spikes.Enqueue(uint32(id), int64(n.currentTick))
	if !n.pendingMark[id] {
		n.pendingMark[id] = true
		n.pendingSpikes = append(n.pendingSpikes, id)
	}
}

// InjectCharge adds delta to id's membrane potential with no clamping.
func (n *Network) InjectCharge(id types.NeuronID, delta int64) {
	if !n.neurons.Valid(id) {
		return
	}
	n.neurons.AddCharge(id, delta)
}

// InjectNoise adds a deterministic per-neuron pseudo-random integer in
// [-a, a] to every neuron's charge.
func (n *Network) InjectNoise(a int) {
	n.injectNoiseFiltered(a, nil)
}

// InjectNoiseToHidden is the "hidden" variant of InjectNoise: isBusNeuron
// identifies ids owned by an external retina/bus collaborator, which are
// skipped from the noise injection entirely.
func (n *Network) InjectNoiseToHidden(a int, isBusNeuron func(types.NeuronID) bool) {
	n.injectNoiseFiltered(a, isBusNeuron)
}

func (n *Network) injectNoiseFiltered(a int, skip func(types.NeuronID) bool) {
	for i := 0; i < n.neurons.Len(); i++ {
		id := types.NeuronID(i)
		if skip != nil && skip(id) {
			continue
		}
		delta := rng.NoiseRange(n.seed, int64(n.currentTick), uint32(id), a)
		if delta != 0 {
			n.neurons.AddCharge(id, int64(delta))
		}
	}
}

// ---------------------------------------------------------------------------
// Internal bookkeeping
// ---------------------------------------------------------------------------

func (n *Network) growFiredMarks() {
	for len(n.firedThisMark) < n.neurons.Len() {
		n.firedThisMark = append(n.firedThisMark, false)
		n.firedLastMark = append(n.firedLastMark, false)
		n.pendingMark = append(n.pendingMark, false)
	}
}

// partitions splits [0, total) into at most n.workers contiguous, equally
// sized ranges — a static partitioning computed fresh every call so that
// population growth between ticks is always reflected in equally sized
// static ranges.
func partitions(total, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	if workers < 1 {
		return nil
	}
	out := make([][2]int, 0, workers)
	chunk := total / workers
	rem := total % workers
	lo := 0
	for w := 0; w < workers; w++ {
		size := chunk
		if w < rem {
			size++
		}
		hi := lo + size
		if hi > lo {
			out = append(out, [2]int{lo, hi})
		}
		lo = hi
	}
	return out
}
