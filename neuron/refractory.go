/*
=================================================================================
REFRACTORY BITMAP
=================================================================================

The engine rebuilds a packed one-bit-per-neuron bitmap at the start
of every tick so that Integration can test "is this target refractory?" in
O(1) without touching the wider neuron struct (threshold, leak, last-fired
tick) at all — a cache-friendly win once population sizes run into the tens
of thousands. The teacher's neuron package instead asks each goroutine-backed
Neuron directly ("is my own refractory timer still running?") since there is
no shared bitmap to maintain in a fully decoupled, per-neuron-goroutine
design; this bitmap is this engine's direct replacement for that per-neuron
self-check, built once and read by every phase of the same tick.
=================================================================================
*/
package neuron

import "github.com/sparknet/core/types"

const wordBits = 64

// RefractoryBitmap is a packed bit-array, one bit per neuron id.
type RefractoryBitmap struct {
	words []uint64
	n     int
}

// NewRefractoryBitmap allocates a bitmap sized for n neurons.
func NewRefractoryBitmap(n int) *RefractoryBitmap {
	return &RefractoryBitmap{
		words: make([]uint64, (n+wordBits-1)/wordBits),
		n:     n,
	}
}

// Rebuild recomputes every bit from the arena's current last-fired ticks for
// the given currentTick, growing the backing store if the arena has gained
// neurons since the last rebuild.
func (b *RefractoryBitmap) Rebuild(a *Arena, currentTick types.Tick) {
	n := a.Len()
	need := (n + wordBits - 1) / wordBits
	if len(b.words) < need {
		b.words = make([]uint64, need)
	} else {
		for i := range b.words {
			b.words[i] = 0
		}
	}
	b.n = n
	for id := 0; id < n; id++ {
		if a.IsRefractory(types.NeuronID(id), currentTick) {
			b.words[id/wordBits] |= 1 << uint(id%wordBits)
		}
	}
}

// Get reports whether neuron id is refractory as of the last Rebuild.
func (b *RefractoryBitmap) Get(id types.NeuronID) bool {
	i := int(id)
	if i >= b.n {
		return false
	}
	return b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}
