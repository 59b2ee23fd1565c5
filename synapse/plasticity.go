/*
=================================================================================
STDP AND ELIGIBILITY-TRACE PLASTICITY
=================================================================================

The teacher's synapse/plasticity.go derives its weight delta from a
continuous exponential decay curve over a wall-clock Δt, shaped by
metaplasticity and dopamine multipliers (Bi & Poo 1998; Sjöström et al. 2001).
This engine's contract fixes a much smaller, integer curve instead — the
whole point of an integer-only core is that two implementations given the
same tick sequence must reach bit-identical weights, which an exponential
float curve can never guarantee across machines.

STDPDelta below is that integer curve: linear in |Δt|, zero outside the
window, magnitude 0/1/2, sign given by which side fired first. It is the only
place in the engine where a timing difference becomes a weight change. The
immediate Pavlovian-mode path (ApplySTDP) and the eligibility-trace
operant-mode path (Reward, which scales by RewardScaleFactor instead of
using STDPDelta) both end in the same weight clamp, types.ClampWeight.
=================================================================================
*/
package synapse

import "github.com/sparknet/core/types"

// STDPDelta computes the raw STDP weight delta for a pre-post firing-time
// difference deltaT = postTick - preTick:
//
//	magnitude m = (2 * (STDPWindow - |Δt|)) / STDPWindow   (integer division)
//	sign:  +m when Δt > 0 (pre-before-post, LTP)
//	       -m when Δt < 0 (LTD)
//	        0 when Δt == 0
//	zero outside |Δt| <= STDPWindow
//
// The result is NOT yet clamped to the weight range — ApplySTDP does that
// after adding it to the current weight, since clamping the delta alone
// would be a different (and wrong) operation from clamping the new weight.
func STDPDelta(deltaT types.Tick) int {
	dt := deltaT
	if dt < 0 {
		dt = -dt
	}
	if dt > types.STDPWindow {
		return 0
	}
	m := int(2*(types.STDPWindow-dt)) / int(types.STDPWindow)
	switch {
	case deltaT > 0:
		return m
	case deltaT < 0:
		return -m
	default:
		return 0
	}
}

// ApplySTDP adds the STDP delta for deltaT to syn's weight, clamped to
// [WeightMin, WeightMax]. Non-plastic synapses are left untouched — STDP and
// reward both ignore them entirely — a non-plastic synapse ignores STDP
// and reward altogether.
func ApplySTDP(syn *Synapse, deltaT types.Tick) {
	if !syn.Plastic {
		return
	}
	delta := STDPDelta(deltaT)
	if delta == 0 {
		return
	}
	syn.Weight = types.ClampWeight(int(syn.Weight) + delta)
}

// SetEligible sets syn's eligibility trace to its maximum value. Called in
// operant mode instead of ApplySTDP when an LTP pairing is detected: the
// weight change itself is deferred until a later Reward call.
func SetEligible(syn *Synapse) {
	if !syn.Plastic {
		return
	}
	syn.Trace = types.EligibilityMax
}

// DecayEligibility reduces syn's trace by EligibilityDecay, saturating at 0.
// Called once per tick, in operant mode only, after Plasticity.
func DecayEligibility(syn *Synapse) {
	if syn.Trace > 0 {
		syn.Trace = types.ClampTrace(int(syn.Trace) - int(types.EligibilityDecay))
	}
}

// Reward applies the delayed, eligibility-gated weight update: every
// plastic synapse with a positive trace has its weight nudged
// by clamp((trace * amount) / RewardScaleFactor, WeightMin, WeightMax), then
// its trace is reset to zero so a single causal pairing cannot be rewarded
// twice ("double-dipping").
func Reward(syn *Synapse, amount int) {
	if !syn.Plastic || syn.Trace <= 0 {
		return
	}
	delta := (int(syn.Trace) * amount) / types.RewardScaleFactor
	if delta > int(types.WeightMax) {
		delta = int(types.WeightMax)
	} else if delta < int(types.WeightMin) {
		delta = int(types.WeightMin)
	}
	syn.Weight = types.ClampWeight(int(syn.Weight) + delta)
	syn.Trace = 0
}
