package uks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sparknet/core/network"
	"github.com/sparknet/core/types"
)

func newTestNetwork() *network.Network {
	return network.New(types.NetworkConfig{
		NeuronCapacity:    4096,
		SynapseCapacity:   16384,
		Seed:              11,
		Workers:           1,
		MaxSpikesPerTick:  64,
		RazorEnabled:      true,
		PlasticityEnabled: true,
	})
}

func TestNewWiresBusRequestAndColumns(t *testing.T) {
	net := newTestNetwork()
	u := New(net, 4, 16, 99)

	assert.Equal(t, 4, u.FreeCount())
	assert.Equal(t, 0, u.AllocatedCount())
	for _, b := range u.bus {
		assert.Equal(t, BusToRequestWeight, net.SynapseWeight(b, u.request))
	}
}

// busPattern returns the bus indices 0..n-1.
func busPattern(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// TestNoveltyAllocatesExactlyOnce presents a fresh pattern for long enough to
// force the Request neuron over its 130 threshold and confirms a column is
// allocated exactly once, even as the presentation continues. The pattern
// has 56 active indices: each bus spike adds +1 to Request, and a pattern
// much smaller than that is drained by Request's leak (3 plus the serotonin
// bonus) before it can accumulate.
func TestNoveltyAllocatesExactlyOnce(t *testing.T) {
	net := newTestNetwork()
	u := New(net, 3, 64, 99)

	pattern := busPattern(56)
	u.Present(pattern)

	allocatedAt := -1
	for tick := 0; tick < 200; tick++ {
		net.Step()
		u.Step()
		if u.AllocatedCount() == 1 && allocatedAt < 0 {
			allocatedAt = tick
		}
	}

	assert.Equal(t, 1, u.AllocatedCount())
	assert.GreaterOrEqual(t, allocatedAt, 0)
	c, _ := u.Column(0)
	assert.True(t, c.Allocated)
}

func TestIdleWithNoPresentationNeverAllocates(t *testing.T) {
	net := newTestNetwork()
	u := New(net, 3, 16, 99)

	for tick := 0; tick < 100; tick++ {
		net.Step()
		u.Step()
	}

	assert.Equal(t, 0, u.AllocatedCount())
}

func TestLearningDisabledPreventsAllocation(t *testing.T) {
	net := newTestNetwork()
	u := New(net, 3, 64, 99)
	u.SetLearningEnabled(false)

	u.Present(busPattern(56))
	for tick := 0; tick < 200; tick++ {
		net.Step()
		u.Step()
	}

	assert.Equal(t, 0, u.AllocatedCount())
}

// TestNoDoubleAllocationOnSustainedPresentation drives the same pattern well
// past the tick the first allocation happens on and confirms a second free
// column is never consumed by the same presentation.
func TestNoDoubleAllocationOnSustainedPresentation(t *testing.T) {
	net := newTestNetwork()
	u := New(net, 5, 64, 99)

	pattern := busPattern(56)
	for tick := 0; tick < 400; tick++ {
		u.Present(pattern) // host keeps re-presenting the same pattern every tick
		net.Step()
		u.Step()
	}

	assert.Equal(t, 1, u.AllocatedCount())
}

func TestHomeostasisMonitorNudgesAcetylcholineWhenSilent(t *testing.T) {
	h := NewHomeostasisMonitor()
	for i := 0; i < HomeostasisWindow*2; i++ {
		h.Observe(0, 4)
	}
	assert.Equal(t, 0, h.Rate())

	net := newTestNetwork()
	h.Apply(net)
	_, ne, _, ach := net.Chemicals()
	assert.Equal(t, types.BaselineAcetylcholine+1, ach)
	assert.Equal(t, types.BaselineNorepinephrine, ne) // silence is not a high-rate stall
}
