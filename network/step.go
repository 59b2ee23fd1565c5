/*
=================================================================================
STEP — THE EIGHT SUB-PHASES OF THE TICK, IN ORDER
=================================================================================

Two phases run on a static, precomputed partition of the neuron-id space via
a bounded errgroup.Group: Leakage (step 2) and the Firing candidate scan
(step 4's threshold test), both pure per-neuron reads/writes with no
cross-neuron dependency. Integration (step 3) touches target neurons
from arbitrary, unpredictable pre-neurons and so stays sequential to avoid
contention; Plasticity (step 5) walks the tiny fired-last/fired-this sets
and is cheap enough sequentially that parallelising it would only add
scheduling overhead for no benefit.
=================================================================================
*/
package network

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sparknet/core/neuron"
	"github.com/sparknet/core/rng"
	"github.com/sparknet/core/synapse"
	"github.com/sparknet/core/types"
)

// Step advances the Network by exactly one tick, executing the eight
// sub-phases below in order and then incrementing current_tick.
func (n *Network) Step() {
	t := n.currentTick

	n.snapshot(t)
	n.leak(t)
	n.integrate(t)
	n.fire(t)
	n.plasticity()
	n.decayEligibility()

	// The panic check reads norepinephrine as it stood entering this tick,
	// before Decay nudges it one step toward baseline: a spike that lands
	// exactly on PanicThreshold must still trigger the reset this tick, not
	// one step later after it has already decayed back under the line.
	// Decay still runs unconditionally for every channel — doPanic's own
	// chem.Panic() call overrides norepinephrine afterward when it fires.
	panicking := n.chem.IsPanicking()
	n.chem.Decay()
	if panicking {
		n.doPanic()
	}

	n.currentTick = t + 1
	if n.metrics != nil {
		n.metrics.Ticks.Inc()
	}
}

// Run calls Step n times.
func (n *Network) Run(steps int) {
	for i := 0; i < steps; i++ {
		n.Step()
	}
}

// snapshot is step 1: move fired_this_tick into fired_last_tick, clear
// fired_this_tick, rebuild the refractory bitmap for the tick about to run.
// "Advance the spike queue to the new tick" names no separate action here:
// queue.Queue.DrainTick already takes the tick to drain as an explicit
// argument, so there is no internal cursor to advance.
func (n *Network) snapshot(t types.Tick) {
	n.growFiredMarks()
	n.firedLastTick = append(n.firedLastTick[:0], n.firedThisTick...)
	n.firedLastMark, n.firedThisMark = n.firedThisMark, n.firedLastMark
	for i := range n.firedThisMark {
		n.firedThisMark[i] = false
	}
	n.firedThisTick = n.firedThisTick[:0]
	n.bitmap.Rebuild(n.neurons, t)
}

// leak is step 2, parallelised over static neuron-id ranges.
func (n *Network) leak(_ types.Tick) {
	leakBonus := n.chem.LeakBonus()
	n.runRanges(n.neurons.Len(), func(lo, hi int) {
		n.neurons.LeakRange(types.NeuronID(lo), types.NeuronID(hi), n.bitmap, leakBonus)
	})
}

// integrate is step 3: sequential by construction, since a single
// pre-neuron's spike can raise the charge of any number of unrelated
// targets and two pre-neurons popped in the same drain may share targets.
func (n *Network) integrate(t types.Tick) {
	arrivals := n.spikes.DrainTick(int64(t) - 1)
	for _, s := range arrivals {
		pre := types.NeuronID(s.Pre)
		n.synapses.Visit(pre, func(syn *synapse.Synapse) {
			if n.bitmap.Get(syn.Target) {
				return
			}
			n.neurons.AddCharge(syn.Target, int64(syn.Weight))
		})
	}
}

// fire is step 4: the candidate scan runs on the same static partition
// as Leak, then Razor (if enabled) trims the field to max_spikes_per_tick.
func (n *Network) fire(t types.Tick) {
	thresholdGain := n.chem.ThresholdGain()
	noiseAmplitude := n.chem.NoiseAmplitude()
	noiseFn := func(id types.NeuronID) int {
		return rng.NoiseRange(n.seed, int64(t), uint32(id), noiseAmplitude)
	}

	candidates := n.scanCandidates(thresholdGain, noiseFn)
	n.lastCandidateCount = len(candidates)
	if n.metrics != nil {
		n.metrics.CandidateCount.Set(float64(len(candidates)))
	}

	winners := candidates
	if n.razorEnabled && len(candidates) > n.maxSpikesPerTick {
		winners = razorSelect(candidates, n.maxSpikesPerTick)
	}

	for _, c := range winners {
		n.neurons.MarkFired(c.ID, t)
		n.spikes.Enqueue(uint32(c.ID), int64(t))
		n.firedThisMark[c.ID] = true
		n.firedThisTick = append(n.firedThisTick, c.ID)
	}

	// Injected spikes (InjectSpike, called since the previous Step) are an
	// authoritative external override: they join fired_this_tick for the
	// tick this call is processing regardless of the Razor's cap, exactly as
	// though they had just won the Razor. Their queue entry was
	// already enqueued by InjectSpike itself.
	for _, id := range n.pendingSpikes {
		if n.firedThisMark[id] {
			continue
		}
		n.neurons.MarkFired(id, t)
		n.firedThisMark[id] = true
		n.firedThisTick = append(n.firedThisTick, id)
	}
	n.clearPending()

	sort.Slice(n.firedThisTick, func(i, j int) bool { return n.firedThisTick[i] < n.firedThisTick[j] })

	if n.metrics != nil {
		n.metrics.SpikesFired.Add(float64(len(n.firedThisTick)))
	}
}

// scanCandidates runs the threshold test over the same static partition used
// by leak, in ascending-id order overall (each worker's range is contiguous
// and disjoint, and ranges are iterated in order).
func (n *Network) scanCandidates(thresholdGain int32, noiseFn func(types.NeuronID) int) []neuron.Candidate {
	total := n.neurons.Len()
	parts := partitions(total, n.workers)
	if len(parts) <= 1 {
		if total == 0 {
			return nil
		}
		return n.neurons.ScanCandidatesRange(0, types.NeuronID(total), n.bitmap, thresholdGain, noiseFn, nil)
	}

	results := make([][]neuron.Candidate, len(parts))
	var g errgroup.Group
	for i, p := range parts {
		i, p := i, p
		g.Go(func() error {
			results[i] = n.neurons.ScanCandidatesRange(types.NeuronID(p[0]), types.NeuronID(p[1]), n.bitmap, thresholdGain, noiseFn, nil)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	var out []neuron.Candidate
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// runRanges partitions [0, total) per n.workers and runs fn over each range
// concurrently via errgroup, falling back to a single inline call when the
// population is too small to split.
func (n *Network) runRanges(total int, fn func(lo, hi int)) {
	parts := partitions(total, n.workers)
	if len(parts) <= 1 {
		if total > 0 {
			fn(0, total)
		}
		return
	}
	var g errgroup.Group
	for _, p := range parts {
		p := p
		g.Go(func() error {
			fn(p[0], p[1])
			return nil
		})
	}
	_ = g.Wait()
}

// plasticity is step 5, gated by plasticity_enabled and DA>=10. The LTP
// sweep walks only fired_last_tick (size spikes_last), and for each
// plastic synapse whose target is in fired_this_tick applies either the
// immediate STDP delta (Pavlovian) or sets the trace to its maximum
// (operant) — an O(spikes_last x fan_out_avg) scan, never an all-pairs one
// (the phase's own complexity rule: no all-pairs scan). Because the sweep only ever
// pairs a pre that fired exactly one tick ago against a post firing this
// tick, the firing-time difference it ever applies STDP to is a fixed
// Δt=+1 (LTP) or Δt=-1 (LTD); the general ±20-tick curve in STDPDelta
// still exists and is exercised directly by synapse's own tests, since nothing
// in this sweep could ever reach a wider gap without violating the
// complexity bound above.
func (n *Network) plasticity() {
	if !n.plasticityEnabled || !n.chem.PlasticityGate() {
		return
	}

	for _, pre := range n.firedLastTick {
		n.synapses.Visit(pre, func(syn *synapse.Synapse) {
			if !syn.Plastic || !n.firedThisMark[syn.Target] {
				return
			}
			if n.operantMode {
				synapse.SetEligible(syn)
			} else {
				synapse.ApplySTDP(syn, 1)
			}
		})
	}

	if n.operantMode {
		return
	}

	for _, pre := range n.firedThisTick {
		n.synapses.Visit(pre, func(syn *synapse.Synapse) {
			if !syn.Plastic || !n.firedLastMark[syn.Target] {
				return
			}
			synapse.ApplySTDP(syn, -1)
		})
	}
}

// decayEligibility is step 6, operant mode only. A trace set to its maximum
// by this tick's LTP sweep is left at that maximum and starts decaying on
// the next tick.
func (n *Network) decayEligibility() {
	if !n.operantMode {
		return
	}
	sweptThisTick := n.plasticityEnabled && n.chem.PlasticityGate()
	n.synapses.VisitAll(func(pre types.NeuronID, syn *synapse.Synapse) {
		if sweptThisTick && syn.Plastic && n.firedLastMark[pre] && n.firedThisMark[syn.Target] {
			return
		}
		synapse.DecayEligibility(syn)
	})
}
