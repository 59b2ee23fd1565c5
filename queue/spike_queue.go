/*
=================================================================================
SPIKE QUEUE - TIME-INDEXED EVENT BUFFER
=================================================================================

Adapted from the teacher's SignalScheduler (neuron/signal_scheduler.go), which
used Go's container/heap to give each neuron's outgoing axon an O(log n)
priority queue ordered by time.Time delivery. This package keeps that exact
data-structure choice — a heap is still the right tool for "give me everything
due at tick N" — but the unit of time is now an integer Tick instead of a
wall-clock timestamp, and the queue is owned by the Network as a whole rather
than distributed one-per-neuron, since every spike emitted at tick t becomes
visible to every downstream target at tick t+1 regardless of which neuron
emitted it.

A spike is just (pre_neuron_id, emission_tick) — no payload, no channel, no
goroutine. Integration looks up "every spike emitted at tick == current-1" and
then walks that pre-neuron's own outgoing synapse list; the queue never stores
per-target fan-out, only the fact that a given neuron fired at a given tick.
=================================================================================
*/
package queue

import "container/heap"

// Spike is a single entry in the queue: neuron Pre fired at tick EmitTick.
type Spike struct {
	Pre      uint32
	EmitTick int64
}

// spikeHeap is a container/heap.Interface ordered by EmitTick ascending, with
// Pre ascending as a stable tie-break so that iteration order for spikes
// emitted in the same tick is deterministic — the fired-this-tick set must
// always be represented deterministically, and that discipline extends to
// queue drains so that Integration visits pre-neurons in a fixed order.
type spikeHeap []Spike

func (h spikeHeap) Len() int { return len(h) }
func (h spikeHeap) Less(i, j int) bool {
	if h[i].EmitTick != h[j].EmitTick {
		return h[i].EmitTick < h[j].EmitTick
	}
	return h[i].Pre < h[j].Pre
}
func (h spikeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *spikeHeap) Push(x any)   { *h = append(*h, x.(Spike)) }
func (h *spikeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is the Network's single, shared spike event buffer.
type Queue struct {
	h spikeHeap
}

// New constructs an empty Queue with a pre-allocated backing array sized for
// typical per-tick fan-out, mirroring the teacher's pre-sized queue capacity.
func New() *Queue {
	q := &Queue{h: make(spikeHeap, 0, 256)}
	heap.Init(&q.h)
	return q
}

// Enqueue records that neuron pre fired (will emit its spike) at tick.
func (q *Queue) Enqueue(pre uint32, tick int64) {
	heap.Push(&q.h, Spike{Pre: pre, EmitTick: tick})
}

// DrainTick removes and returns, in ascending pre-neuron-id order, every
// spike whose EmitTick equals tick. Spikes are discarded once drained: each
// is consumed by the Integration phase at tick t+1 and never revisited.
func (q *Queue) DrainTick(tick int64) []Spike {
	var out []Spike
	for q.h.Len() > 0 && q.h[0].EmitTick <= tick {
		s := heap.Pop(&q.h).(Spike)
		if s.EmitTick == tick {
			out = append(out, s)
		}
		// EmitTick < tick should never happen in correct use (every tick
		// drains exactly tick-1 before advancing) but popping it here rather
		// than leaving it stranded keeps the queue self-healing.
	}
	return out
}

// Len reports the number of spikes currently queued.
func (q *Queue) Len() int { return q.h.Len() }

// Clear empties the queue. Used by Reset and by the panic-reset safety
// interrupt.
func (q *Queue) Clear() {
	q.h = q.h[:0]
}
