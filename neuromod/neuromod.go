/*
=================================================================================
NEUROMODULATORS - FOUR-CHANNEL CHEMICAL STATE
=================================================================================

Adapted from the teacher's ChemicalModulator (extracellular/chemical_modulator.go),
which modeled neurotransmitter and neuromodulator signaling as continuous
concentration fields diffusing through 3D space with per-ligand clearance
rates. That spatial, floating-point machinery has no home in an integer,
single-process engine with no notion of neuron position — the
goki/cogentcore-class spatial stack has no analogue here either.

What survives, reshaped into four clamped integer bytes owned directly by
the Network (never a package-level singleton) — the four channels the
teacher's modulator also named —
dopamine, norepinephrine, serotonin, acetylcholine — each decaying one step
per tick toward its own baseline, each clamped to [0, 100], each mutated only
through a "spike" (instantaneous addition, itself clamped).
=================================================================================
*/
package neuromod

import "github.com/sparknet/core/types"

// Vector holds the Network's four neuromodulator channels. The zero value is
// not meaningful — use New, which seeds every channel at its baseline.
type Vector struct {
	Dopamine       int
	Norepinephrine int
	Serotonin      int
	Acetylcholine  int
}

// New returns a Vector initialised to the contract baselines.
func New() Vector {
	return Vector{
		Dopamine:       types.BaselineDopamine,
		Norepinephrine: types.BaselineNorepinephrine,
		Serotonin:      types.BaselineSerotonin,
		Acetylcholine:  types.BaselineAcetylcholine,
	}
}

// Decay moves every channel one integer step toward its baseline. Called
// exactly once per tick, after Plasticity and Eligibility decay.
func (v *Vector) Decay() {
	v.Dopamine = stepToward(v.Dopamine, types.BaselineDopamine)
	v.Norepinephrine = stepToward(v.Norepinephrine, types.BaselineNorepinephrine)
	v.Serotonin = stepToward(v.Serotonin, types.BaselineSerotonin)
	v.Acetylcholine = stepToward(v.Acetylcholine, types.BaselineAcetylcholine)
}

func stepToward(v, baseline int) int {
	switch {
	case v > baseline:
		return v - 1
	case v < baseline:
		return v + 1
	default:
		return v
	}
}

// SpikeDopamine adds d (may be negative) to dopamine, clamped to [0,100].
func (v *Vector) SpikeDopamine(d int) { v.Dopamine = types.ClampByte(v.Dopamine + d) }

// SpikeNorepinephrine adds d to norepinephrine, clamped to [0,100].
func (v *Vector) SpikeNorepinephrine(d int) {
	v.Norepinephrine = types.ClampByte(v.Norepinephrine + d)
}

// SpikeSerotonin adds d to serotonin, clamped to [0,100].
func (v *Vector) SpikeSerotonin(d int) { v.Serotonin = types.ClampByte(v.Serotonin + d) }

// SpikeAcetylcholine adds d to acetylcholine, clamped to [0,100].
func (v *Vector) SpikeAcetylcholine(d int) {
	v.Acetylcholine = types.ClampByte(v.Acetylcholine + d)
}

// Panic forces the post-panic-reset chemistry: norepinephrine is pinned to
// PanicRecoveryNE, the other channels are untouched (only NE is force-set
// by the startle interrupt).
func (v *Vector) Panic() {
	v.Norepinephrine = types.PanicRecoveryNE
}

// IsPanicking reports whether norepinephrine has crossed the panic threshold.
func (v *Vector) IsPanicking() bool {
	return v.Norepinephrine >= types.PanicThreshold
}

// LeakBonus is the serotonin-derived extra per-tick membrane decay applied
// in the Leak phase: floor(5-HT/10).
func (v *Vector) LeakBonus() int32 {
	return int32(v.Serotonin / 10)
}

// ThresholdGain is the norepinephrine-derived reduction in effective firing
// threshold: floor(NE/5).
func (v *Vector) ThresholdGain() int32 {
	return int32(v.Norepinephrine / 5)
}

// NoiseAmplitude is A, the half-width of the per-neuron firing-threshold
// jitter: max(0, floor((NE-60)/4)).
func (v *Vector) NoiseAmplitude() int {
	a := (v.Norepinephrine - 60) / 4
	if a < 0 {
		return 0
	}
	return a
}

// BusGain is the per-tick charge injected into each active bus neuron
// during a sustained recognition-bus presentation: 5 + ACh/10, range 5-15.
func (v *Vector) BusGain() int32 {
	return int32(5 + v.Acetylcholine/10)
}

// SearchDepth is the collaborator-facing traversal-depth hint: 3 + 5-HT/20.
func (v *Vector) SearchDepth() int {
	return 3 + v.Serotonin/20
}

// PlasticityGate reports whether DA is high enough to allow STDP/eligibility
// updates this tick: DA >= 10. The plasticity_enabled flag is checked
// separately by the Network.
func (v *Vector) PlasticityGate() bool {
	return v.Dopamine >= 10
}
