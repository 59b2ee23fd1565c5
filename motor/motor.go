/*
=================================================================================
MOTOR — PLASTIC BUS -> MOTOR-NEURON TEMPLATE (thin)
=================================================================================

A motor effector needs only build/output operations; the minimal state
behind it is grounded the same way a Column's allocate-time wiring is:
a MotorTemplate names a contiguous span of bus indices to match, the LIF
tuning of the motor neuron BuildMotor adds, and whether the match edges
should be plastic, and BuildMotor
wires the same +1-if-matched/-16-if-mismatched convention used for column
allocation. Unlike a Column, a motor effector is built once by the host
(never one-shot-allocated by the UKS itself) — this package owns no state
machine, only the wiring helper and a thin output probe.
=================================================================================
*/
package motor

import (
	"github.com/sparknet/core/network"
	"github.com/sparknet/core/types"
)

// MotorTemplate names a contiguous span of recognition-bus indices a motor
// effector should respond to, the bus neuron ids that back those indices,
// and the target motor neuron's LIF tuning.
type MotorTemplate struct {
	// BusIDs is the full recognition bus, in index order — the same slice a
	// uks.UKS exposes over its bus neurons. MatchLo/MatchHi select the
	// contiguous span within it this template matches.
	BusIDs           []types.NeuronID
	MatchLo, MatchHi int

	Threshold, Leak int32
	Refractory      types.Tick

	// Plastic controls whether the template's bus->motor edges carry the
	// plastic flag, letting STDP refine the template after construction.
	Plastic bool
}

// Motor is the result of BuildMotor: a single motor neuron id, wired to the
// bus it was built from.
type Motor struct {
	ID       types.NeuronID
	Template MotorTemplate
}

// BuildMotor adds a motor neuron to net and wires it to tmpl.BusIDs using
// the same matched(+1)/mismatched(-16) convention column allocation uses:
// every index inside [MatchLo, MatchHi) gets a weak excitatory
// edge, every index outside it gets a strong inhibitory one.
func BuildMotor(net *network.Network, tmpl MotorTemplate) *Motor {
	id := net.AddNeuron(types.NeuronConfig{
		Threshold:  tmpl.Threshold,
		Leak:       tmpl.Leak,
		Refractory: tmpl.Refractory,
	})

	for idx, busID := range tmpl.BusIDs {
		weight := types.Weight(-16)
		if idx >= tmpl.MatchLo && idx < tmpl.MatchHi {
			weight = 1
		}
		net.Connect(busID, id, weight, tmpl.Plastic)
	}

	return &Motor{ID: id, Template: tmpl}
}

// MotorOutput reports whether m's motor neuron fired on the most recently
// completed Network tick.
func MotorOutput(net *network.Network, m *Motor) bool {
	return net.DidFire(m.ID)
}
