package neuron

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sparknet/core/types"
)

func TestAddInitializesRestingState(t *testing.T) {
	a := NewArena(4)
	id := a.Add(types.NeuronConfig{Threshold: 5, Leak: 1, Refractory: 2})
	assert.Equal(t, types.Charge(0), a.Charge(id))
	assert.Equal(t, int64(-3), a.LastFiredTick(id))
	assert.True(t, a.Valid(id))
	assert.False(t, a.Valid(types.NeuronID(1)))
}

func TestFreshNeuronMayFireImmediately(t *testing.T) {
	a := NewArena(4)
	id := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 2})
	assert.False(t, a.IsRefractory(id, 0))
}

func TestIsRefractoryWindow(t *testing.T) {
	a := NewArena(4)
	id := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 2})
	a.MarkFired(id, 0)
	assert.True(t, a.IsRefractory(id, 0))
	assert.True(t, a.IsRefractory(id, 1))
	assert.True(t, a.IsRefractory(id, 2))
	assert.False(t, a.IsRefractory(id, 3))
}

func TestAddChargeNoClamping(t *testing.T) {
	a := NewArena(4)
	id := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 0})
	a.AddCharge(id, -100)
	assert.Equal(t, types.Charge(-100), a.Charge(id))
}

func TestMarkFiredResetsCharge(t *testing.T) {
	a := NewArena(4)
	id := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 2})
	a.AddCharge(id, 50)
	a.MarkFired(id, 7)
	assert.Equal(t, types.Charge(0), a.Charge(id))
	assert.Equal(t, int64(7), a.LastFiredTick(id))
}

func TestResetPreservesNothingButLifecycleState(t *testing.T) {
	a := NewArena(4)
	id := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 2})
	a.MarkFired(id, 10)
	a.Reset(id)
	assert.Equal(t, types.Charge(0), a.Charge(id))
	assert.Equal(t, int64(-3), a.LastFiredTick(id))
}
