package neuron

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sparknet/core/types"
)

func TestRebuildMatchesArenaState(t *testing.T) {
	a := NewArena(8)
	id0 := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 3})
	id1 := a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 3})
	a.MarkFired(id0, 0)

	bm := NewRefractoryBitmap(a.Len())
	bm.Rebuild(a, 1)
	assert.True(t, bm.Get(id0))
	assert.False(t, bm.Get(id1))
}

func TestRebuildGrowsWithArena(t *testing.T) {
	a := NewArena(1)
	a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 0})
	bm := NewRefractoryBitmap(a.Len())
	bm.Rebuild(a, 0)

	for i := 0; i < 70; i++ {
		a.Add(types.NeuronConfig{Threshold: 5, Leak: 0, Refractory: 0})
	}
	bm.Rebuild(a, 0)
	assert.False(t, bm.Get(types.NeuronID(70)))
}

func TestGetOutOfRangeIsFalse(t *testing.T) {
	bm := NewRefractoryBitmap(1)
	assert.False(t, bm.Get(types.NeuronID(500)))
}
