/*
=================================================================================
UKS — UNIVERSAL KNOWLEDGE STORE: RECOGNITION BUS & ONE-SHOT ALLOCATION
=================================================================================

The teacher carries no allocator or recognition layer of its own; this
package is new engineering following the shape of two of its patterns: the
registry/lifecycle style of component/component.go (typed ids handed back by
a constructor, read-only probes, no caller-visible internal state) for the
bookkeeping around columns, and extracellular/chemical_modulator.go's
ligand-by-ligand "spike and let it decay" idiom for how this layer only ever
touches chemistry through the Network's existing Spike* and Chemicals surface,
never by reaching into neuron state directly. The UKS adds nothing to the
Network's own state model: it owns a recognition bus (a flat population of
"sensory channel" neurons), a single Request neuron, a single Global
Inhibitor, and a set of column.Columns, all as ordinary Network neurons
connected by ordinary synapses — allocation is just Connect calls issued at
the moment the Request neuron fires on a novel pattern.

UKS.Step must be called once after every network.Network.Step: it reads
that tick's fired_this_tick to run the Recognition/Novelty/Idle state
machine, then prepares the sustained bus injection and the post-allocation
settling suppression that the *next* Network.Step will integrate.
=================================================================================
*/
package uks

import (
	"sort"

	"github.com/sparknet/core/column"
	"github.com/sparknet/core/metrics"
	"github.com/sparknet/core/network"
	"github.com/sparknet/core/types"
)

// Per-bus-neuron and Request/Global-Inhibitor LIF tuning. The Request
// neuron's threshold/leak/refractory (130/3/25) are part of the fixed
// contract; the bus neuron and Global Inhibitor tunings are an
// implementation choice, recorded in the project's grounding ledger.
const (
	BusThreshold, BusLeak, BusRefractory int32 = 3, 1, 0

	GlobalInhibitorThreshold, GlobalInhibitorLeak, GlobalInhibitorRefractory int32 = 1, 0, 0

	// BusToRequestWeight, ColumnOutputToRequestWeight and
	// ColumnToRequestEdgeCount implement the
	// Request neuron's bus/column fan-in: +1 per bus neuron, and four
	// separate -16 edges per allocated column's output so a single firing
	// column contributes -64 total — enough to keep Request's charge well
	// under its 130 threshold even with a full ~56-index bus pattern firing
	// every tick underneath it.
	BusToRequestWeight          types.Weight = 1
	ColumnOutputToRequestWeight types.Weight = -16
	ColumnToRequestEdgeCount                 = 4

	GlobalInhibitorDriveWeight  types.Weight = 4
	GlobalInhibitorOutputWeight types.Weight = -16

	// AllocationSettlingDropCharge is injected into every other free
	// column's output neuron for StabilizationTicks ticks after an
	// allocation, preventing the same bus presentation from allocating
	// twice within the same stabilization window.
	AllocationSettlingDropCharge = -10
)

// UKS is the recognition/allocation layer built atop a Network.
type UKS struct {
	net *network.Network

	busSize int
	bus     []types.NeuronID

	request         types.NeuronID
	globalInhibitor types.NeuronID

	columns []*column.Column

	activeColumn      int // index into columns, -1 if none active this tick
	requestFired      bool
	totalRecognitions int
	allocatedCount    int

	currentInput    map[int]bool
	learningEnabled bool

	settlingTicksRemaining types.Tick
	settlingExclude        int // column index just allocated, excluded from the settling drop

	homeostasis *HomeostasisMonitor
	metrics     *metrics.Registry
}

// New constructs a UKS with numColumns free columns and a bus of busSize
// recognition channels, all wired into net.
func New(net *network.Network, numColumns, busSize int, seed uint64) *UKS {
	u := &UKS{
		net:             net,
		busSize:         busSize,
		activeColumn:    -1,
		learningEnabled: true,
		currentInput:    make(map[int]bool),
		homeostasis:     NewHomeostasisMonitor(),
	}

	for i := 0; i < busSize; i++ {
		u.bus = append(u.bus, net.AddNeuron(types.NeuronConfig{Threshold: BusThreshold, Leak: BusLeak, Refractory: types.Tick(BusRefractory)}))
	}
	u.request = net.AddNeuron(types.NeuronConfig{
		Threshold:  types.RequestNeuronThreshold,
		Leak:       types.RequestNeuronLeak,
		Refractory: types.RequestNeuronRefractory,
	})
	for _, b := range u.bus {
		net.Connect(b, u.request, BusToRequestWeight, false)
	}

	u.globalInhibitor = net.AddNeuron(types.NeuronConfig{
		Threshold: GlobalInhibitorThreshold, Leak: GlobalInhibitorLeak, Refractory: types.Tick(GlobalInhibitorRefractory),
	})

	for i := 0; i < numColumns; i++ {
		c := column.Build(net, i, seed)
		net.Connect(c.OutputID, u.globalInhibitor, GlobalInhibitorDriveWeight, false)
		net.Connect(u.globalInhibitor, c.OutputID, GlobalInhibitorOutputWeight, false)
		u.columns = append(u.columns, c)
	}

	return u
}

// WithMetrics attaches an optional metrics.Registry.
func (u *UKS) WithMetrics(reg *metrics.Registry) *UKS {
	u.metrics = reg
	return u
}

// SetLearningEnabled toggles whether Novelty events may allocate a column.
func (u *UKS) SetLearningEnabled(v bool) { u.learningEnabled = v }

// Present registers pattern (a set of bus indices) as the input the UKS
// should sustain-inject every subsequent Step call, until the next Present
// call. An empty pattern clears the current presentation.
func (u *UKS) Present(pattern []int) {
	u.currentInput = make(map[int]bool, len(pattern))
	for _, idx := range pattern {
		if idx >= 0 && idx < u.busSize {
			u.currentInput[idx] = true
		}
	}
}

// Step runs the Recognition/Novelty/Idle state machine against the
// Network's most recently completed tick, then arranges the sustained bus
// charge and post-allocation settling injections that the next
// Network.Step will integrate. Must be called once after every Network.Step.
func (u *UKS) Step() {
	allocatedBefore := u.allocatedCount
	u.resolveTick()
	u.injectSustainedBus()
	u.injectSettling()
	u.homeostasis.Observe(u.firedColumnCount(), u.allocatedCount)
	u.homeostasis.Apply(u.net)
	if u.metrics != nil && u.allocatedCount > allocatedBefore {
		u.metrics.ColumnsAllocated.Inc()
	}
}

func (u *UKS) firedColumnCount() int {
	n := 0
	for _, c := range u.columns {
		if c.Allocated && u.net.DidFire(c.OutputID) {
			n++
		}
	}
	return n
}

// resolveTick implements the Recognition/Novelty/Idle state machine.
func (u *UKS) resolveTick() {
	u.activeColumn = -1
	recognized := false
	for i, c := range u.columns {
		if !c.Allocated {
			continue
		}
		if u.net.DidFire(c.OutputID) {
			if !recognized {
				u.activeColumn = i
				recognized = true
				u.totalRecognitions++
				c.ActivationCount++
			}
		}
	}

	if recognized {
		u.requestFired = false
		u.net.SpikeDopamine(10)
		return
	}

	if u.net.DidFire(u.request) {
		u.requestFired = true
		u.net.SpikeNorepinephrine(50)
		u.net.SpikeAcetylcholine(30)
		if u.learningEnabled && len(u.currentInput) > 0 {
			u.allocate()
		}
		return
	}

	u.requestFired = false
	_, _, _, ach := u.net.Chemicals()
	u.net.SpikeSerotonin(5)
	if ach > 30 {
		u.net.SpikeAcetylcholine(-2)
	}
}

// allocate wires the lowest-index free column to the current pattern and
// begins the post-allocation settling window.
func (u *UKS) allocate() {
	free := -1
	for i, c := range u.columns {
		if !c.Allocated {
			free = i
			break
		}
	}
	if free < 0 {
		return
	}
	c := u.columns[free]

	for idx, busID := range u.bus {
		weight := types.Weight(-16)
		if u.currentInput[idx] {
			weight = 1
		}
		for _, in := range c.Inputs() {
			u.net.Connect(busID, in, weight, false)
		}
	}

	for i, other := range u.columns {
		if i == free || other.Allocated {
			continue
		}
		u.net.InjectCharge(other.OutputID, AllocationSettlingDropCharge)
	}

	for i := 0; i < ColumnToRequestEdgeCount; i++ {
		u.net.Connect(c.OutputID, u.request, ColumnOutputToRequestWeight, false)
	}

	c.Allocated = true
	c.AllocatedAtTick = u.net.CurrentTick()
	c.ActivationCount = 0
	u.allocatedCount++
	u.activeColumn = free
	u.net.SpikeDopamine(30)
	u.currentInput = make(map[int]bool)

	u.settlingTicksRemaining = types.StabilizationTicks
	u.settlingExclude = free
}

// injectSustainedBus applies the per-tick sustained bus charge for every
// index in the current presentation.
func (u *UKS) injectSustainedBus() {
	if len(u.currentInput) == 0 {
		return
	}
	gain := u.net.BusGain()
	indices := make([]int, 0, len(u.currentInput))
	for idx := range u.currentInput {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		u.net.InjectCharge(u.bus[idx], int64(gain))
	}
}

// injectSettling continues the post-allocation suppression drop for
// StabilizationTicks ticks after an allocation.
func (u *UKS) injectSettling() {
	if u.settlingTicksRemaining <= 0 {
		return
	}
	for i, c := range u.columns {
		if i == u.settlingExclude || c.Allocated {
			continue
		}
		u.net.InjectCharge(c.OutputID, AllocationSettlingDropCharge)
	}
	u.settlingTicksRemaining--
}

// ---------------------------------------------------------------------------
// Probes
// ---------------------------------------------------------------------------

// ActiveColumn returns the column recognised or allocated on the most
// recently resolved tick, if any.
func (u *UKS) ActiveColumn() (*column.Column, bool) {
	if u.activeColumn < 0 {
		return nil, false
	}
	return u.columns[u.activeColumn], true
}

func (u *UKS) DidRequestFire() bool { return u.requestFired }

// Bus exposes the recognition bus's neuron ids in index order, so a host can
// build motor.MotorTemplate values against the same bus this UKS drives.
func (u *UKS) Bus() []types.NeuronID {
	out := make([]types.NeuronID, len(u.bus))
	copy(out, u.bus)
	return out
}

func (u *UKS) AllocatedCount() int { return u.allocatedCount }

func (u *UKS) FreeCount() int { return len(u.columns) - u.allocatedCount }

func (u *UKS) Column(id int) (*column.Column, bool) {
	if id < 0 || id >= len(u.columns) {
		return nil, false
	}
	return u.columns[id], true
}

// GetSearchDepth is the collaborator-facing traversal-depth hint.
func (u *UKS) GetSearchDepth() int { return u.net.SearchDepth() }
