/*
=================================================================================
LIF UPDATE PRIMITIVES — LEAK AND FIRE
=================================================================================

These are the per-neuron arithmetic cores of the Network's tick (the Leak
and Firing phases). They are written as pure range-scans over the Arena
with no locking of their own, so that Network can either call them inline
for a single range covering the whole population, or hand disjoint ranges
to a worker pool — the Leak phase and the Firing candidate-gathering scan
are the two places running multiple goroutines in parallel is safe, since
neither phase has any cross-neuron dependency within itself.
=================================================================================
*/
package neuron

import "github.com/sparknet/core/types"

// LeakRange applies one tick of passive membrane decay to every
// non-refractory neuron in [lo, hi): V <- max(0, V - (L + leakBonus)).
// leakBonus is floor(5-HT/10), supplied by the caller so this package never
// reaches into neuromod directly.
func (a *Arena) LeakRange(lo, hi types.NeuronID, bitmap *RefractoryBitmap, leakBonus int32) {
	for id := lo; id < hi; id++ {
		if bitmap.Get(id) {
			continue
		}
		drain := int64(a.leak[id]) + int64(leakBonus)
		v := int64(a.charge[id]) - drain
		a.charge[id] = types.ClampCharge(v)
	}
}

// Candidate is a neuron whose charge met its effective threshold during the
// Firing phase's candidate-gathering scan.
type Candidate struct {
	ID     types.NeuronID
	Charge types.Charge
}

// EffectiveThreshold computes θ' = max(1, θ - thresholdGain + noise).
func EffectiveThreshold(theta int32, thresholdGain int32, noise int) int32 {
	t := theta - thresholdGain + int32(noise)
	if t < 1 {
		return 1
	}
	return t
}

// ScanCandidatesRange collects every non-refractory neuron in [lo, hi) whose
// current charge meets its effective threshold into out, appending as it
// goes. noiseFn supplies the per-neuron, per-tick LCG-derived jitter inside
// [-A,+A]; the caller is responsible for computing A from NE.
func (a *Arena) ScanCandidatesRange(lo, hi types.NeuronID, bitmap *RefractoryBitmap, thresholdGain int32, noiseFn func(id types.NeuronID) int, out []Candidate) []Candidate {
	for id := lo; id < hi; id++ {
		if bitmap.Get(id) {
			continue
		}
		theta := EffectiveThreshold(a.threshold[id], thresholdGain, noiseFn(id))
		if int32(a.charge[id]) >= theta {
			out = append(out, Candidate{ID: id, Charge: a.charge[id]})
		}
	}
	return out
}
