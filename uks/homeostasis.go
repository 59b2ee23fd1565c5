/*
=================================================================================
HOMEOSTASIS MONITOR — ROLLING FIRING-RATE REGULATION
=================================================================================

Grounded on the teacher's glial.go, specifically BasicProcessingMonitor's
periodic updateAllNeuronStates/assessNeuronState loop: a glial cell that
polls a population's recent activity on a cadence of its own and derives a
ProcessingPhase/HealthScore from it, never touching neuron state directly.
This package keeps that same continuous-observation shape but drops the
floating-point accumulator for the same fixed-point integer arithmetic the
rest of this engine uses: the rolling rate lives at 1/256 resolution (a
plain int, no float anywhere), decayed by one 64th of the distance to the
latest sample per observation — an integer approximation of an EWMA with
time constant HomeostasisWindow.

Two failure modes are nudged automatically: a rate stuck at its high-water
mark for HomeostasisStallTicks running gets norepinephrine pushed up — a
slow-acting escalation distinct from, and upstream of, the hard Panic reset,
since sustained NE growth eventually crosses the panic threshold on its own
if the over-firing never relents — and a rate that has been exactly zero
gets an acetylcholine nudge, raising bus gain to help a silent network
recover responsiveness.
=================================================================================
*/
package uks

import "github.com/sparknet/core/network"

const (
	// HomeostasisWindow is the EWMA time constant, in ticks, for the rolling
	// allocated-column firing rate.
	HomeostasisWindow = 64

	// HomeostasisStallTicks is how long the rolling rate must sit at its
	// high-water mark before the monitor starts nudging norepinephrine up.
	HomeostasisStallTicks = 32

	// homeostasisScale is the fixed-point resolution of rollingRate: values
	// are rate * homeostasisScale, so a rate of 1.0 (every allocated column
	// fired) is represented as exactly homeostasisScale.
	homeostasisScale = 256
)

// HomeostasisMonitor tracks a rolling estimate of how much of the allocated
// column population fires per tick and nudges chemistry when that estimate
// stalls at an extreme.
type HomeostasisMonitor struct {
	rollingRate int // fixed-point, scale homeostasisScale
	highWater   int
	stallTicks  int
}

// NewHomeostasisMonitor returns a monitor with its rolling rate at zero.
func NewHomeostasisMonitor() *HomeostasisMonitor {
	return &HomeostasisMonitor{}
}

// Observe folds firedCount (how many allocated columns fired this tick) into
// the rolling rate, given denom allocated columns total.
func (h *HomeostasisMonitor) Observe(firedCount, denom int) {
	sample := 0
	if denom > 0 {
		sample = firedCount * homeostasisScale / denom
	}
	// EWMA step: rolling += (sample - rolling) / HomeostasisWindow.
	h.rollingRate += (sample - h.rollingRate) / HomeostasisWindow

	if h.rollingRate > 0 && h.rollingRate >= h.highWater {
		h.highWater = h.rollingRate
		h.stallTicks++
	} else {
		h.stallTicks = 0
	}
}

// Apply nudges the Network's chemistry if the rolling rate has stalled at
// its high-water mark or sits at exactly zero.
func (h *HomeostasisMonitor) Apply(net *network.Network) {
	if h.stallTicks >= HomeostasisStallTicks {
		net.SpikeNorepinephrine(2)
	}
	if h.rollingRate == 0 {
		net.SpikeAcetylcholine(1)
	}
}

// Rate returns the current rolling rate as a fixed-point integer at 1/256
// resolution.
func (h *HomeostasisMonitor) Rate() int { return h.rollingRate }
