/*
=================================================================================
SYNAPSE STORE - DUAL CONTIGUOUS/OVERFLOW ARENA
=================================================================================

Adapted from the teacher's EnhancedSynapse (synapse/synapse.go), which modeled
a synapse as a self-contained, thread-safe object wired to its neighbours
through a callback struct. That per-synapse object identity made sense when
every neuron and synapse was an independently running goroutine; it is pure
overhead here, where the Network owns every synapse directly and a tick
touches thousands of them sequentially or in tight, cache-friendly loops.

What this package keeps from the teacher's lineage is the STDP/plasticity
vocabulary (synapse/plasticity.go names "LTP", "LTD", "eligibility") and the
four fields a synapse actually needs: a target neuron id, an integer weight
clamped to [-16,16], a plastic flag, and an integer eligibility trace
clamped to [0,100].

STORAGE SHAPE:
A pre-neuron's outgoing synapses live in one of two places:
  - the CONTIGUOUS ARENA, a single flat slice shared by every pre-neuron,
    where a neuron's synapses occupy a suffix run [base, base+count). This is
    the fast path: Connect can extend a neuron's run in place as long as
    nothing has been appended to the arena on its behalf since.
  - the OVERFLOW MAP, keyed by pre-neuron id, used the moment a neuron's run
    can no longer be extended in place (another neuron's synapses were
    appended to the arena after this one's last synapse). The NEW rows go
    into the neuron's overflow row, while its existing run stays where it is
    in the arena; the iteration rule is
    contiguous-then-overflow so call sites never care which region a given
    synapse actually lives in — the per-neuron outgoing iteration is a
    single iterator regardless of which region backs it.
=================================================================================
*/
package synapse

import "github.com/sparknet/core/types"

// Synapse is one directed, weighted connection, stored by value in the
// arena or inside an overflow row.
type Synapse struct {
	Target  types.NeuronID
	Weight  types.Weight
	Plastic bool
	Trace   types.Trace
}

// Store owns the contiguous arena and the dynamic overflow map for every
// pre-neuron's outgoing synapse set.
type Store struct {
	arena []Synapse

	// base/count describe, for each pre-neuron id, the suffix run of arena
	// it owns (when contiguous). A neuron with count==0 and no overflow row
	// simply has no outgoing synapses.
	base  []uint32
	count []uint32

	// overflow holds additional rows appended after a neuron's contiguous
	// run could no longer be extended in place (another neuron's synapses
	// were appended to the arena in the interim). Once a pre-neuron gains
	// an overflow row it never shrinks back to pure-contiguous storage —
	// overflow rows are never compacted back, they are treated as permanent.
	overflow map[types.NeuronID][]Synapse
}

// NewStore constructs an empty Store with a pre-sized arena.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		arena:    make([]Synapse, 0, capacity),
		base:     make([]uint32, 0, 64),
		count:    make([]uint32, 0, 64),
		overflow: make(map[types.NeuronID][]Synapse),
	}
}

// ensureNeuron grows base/count so that pre is addressable.
func (s *Store) ensureNeuron(pre types.NeuronID) {
	for types.NeuronID(len(s.base)) <= pre {
		s.base = append(s.base, 0)
		s.count = append(s.count, 0)
	}
}

// Connect appends a new synapse from pre to the given target. It extends
// pre's contiguous run in place when pre currently owns the tail of the
// arena; otherwise the new synapse is appended to pre's overflow row.
func (s *Store) Connect(pre types.NeuronID, syn Synapse) {
	s.ensureNeuron(pre)

	idx := int(pre)
	ownsTail := s.count[idx] > 0 && int(s.base[idx])+int(s.count[idx]) == len(s.arena)
	firstConnectionEver := s.count[idx] == 0 && len(s.overflow[pre]) == 0

	if ownsTail || firstConnectionEver {
		if s.count[idx] == 0 {
			s.base[idx] = uint32(len(s.arena))
		}
		s.arena = append(s.arena, syn)
		s.count[idx]++
		return
	}

	s.overflow[pre] = append(s.overflow[pre], syn)
}

// Outgoing returns, in contiguous-then-overflow order, every synapse
// currently owned by pre. The returned slices must not be mutated through
// append (use Visit for in-place weight/trace updates); they may be read
// freely.
func (s *Store) Outgoing(pre types.NeuronID) (contiguous []Synapse, overflow []Synapse) {
	idx := int(pre)
	if idx < len(s.base) && s.count[idx] > 0 {
		contiguous = s.arena[s.base[idx] : s.base[idx]+s.count[idx]]
	}
	overflow = s.overflow[pre]
	return
}

// Visit calls fn once for every outgoing synapse of pre, contiguous rows
// first, in the order they were connected. fn receives a pointer that may be
// mutated in place (weight/trace updates during plasticity); the pointer is
// only valid for the duration of the call.
func (s *Store) Visit(pre types.NeuronID, fn func(*Synapse)) {
	idx := int(pre)
	if idx < len(s.base) && s.count[idx] > 0 {
		run := s.arena[s.base[idx] : s.base[idx]+s.count[idx]]
		for i := range run {
			fn(&run[i])
		}
	}
	row := s.overflow[pre]
	for i := range row {
		fn(&row[i])
	}
}

// VisitAll calls fn once for every synapse of every pre-neuron in the store,
// contiguous-then-overflow per neuron, pre-neurons in ascending id order.
// Used by Reward and by full-population invariant checks.
func (s *Store) VisitAll(fn func(pre types.NeuronID, syn *Synapse)) {
	for idx := range s.base {
		pre := types.NeuronID(idx)
		if s.count[idx] > 0 {
			run := s.arena[s.base[idx] : s.base[idx]+s.count[idx]]
			for i := range run {
				fn(pre, &run[i])
			}
		}
		row := s.overflow[pre]
		for i := range row {
			fn(pre, &row[i])
		}
	}
}

// Weight returns the weight of the first synapse from-pre-to-target found
// (contiguous then overflow), or 0 if no such synapse exists.
func (s *Store) Weight(from, to types.NeuronID) types.Weight {
	var found types.Weight
	matched := false
	s.Visit(from, func(syn *Synapse) {
		if !matched && syn.Target == to {
			found = syn.Weight
			matched = true
		}
	})
	return found
}
