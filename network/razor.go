/*
=================================================================================
RAZOR — k-WINNER-TAKE-ALL PARTIAL SELECTION
=================================================================================

The Firing phase needs the K candidates with largest charge, descending,
ties broken by smaller neuron id, using a partial-selection algorithm —
explicitly ruling out a full O(n log n) sort of the candidate set. That is
exactly the textbook quickselect use case: a Lomuto partition driven
towards the k-th order statistic, which finds the top-K set in expected
O(n) time without ever fully ordering it.

A min-heap-of-size-K alternative would cost O(n log K) and is simpler to
read, but degrades the expected-linear guarantee and does no better once K
approaches the population size (plausible here: K defaults small, but
nothing stops a caller from setting K close to the population). Quickselect
keeps the complexity bound honest at the cost of a slightly fiddlier
partition loop.
=================================================================================
*/
package network

import "github.com/sparknet/core/neuron"

// candidateRank is the total order Razor selects by: larger charge first,
// smaller neuron id breaking ties.
func candidateRank(a, b neuron.Candidate) bool {
	if a.Charge != b.Charge {
		return a.Charge > b.Charge
	}
	return a.ID < b.ID
}

// razorSelect reorders cands in place and returns its first k elements —
// exactly the top-k candidates under candidateRank, in arbitrary order
// amongst themselves. The caller is responsible for any further ordering it
// needs (the tick's fired_this_tick set is sorted by id separately).
func razorSelect(cands []neuron.Candidate, k int) []neuron.Candidate {
	if k <= 0 {
		return cands[:0]
	}
	if k >= len(cands) {
		return cands
	}
	quickselect(cands, 0, len(cands)-1, k-1)
	return cands[:k]
}

// quickselect partitions cands[lo:hi+1] so that the element destined for
// index target is in its final sorted (by candidateRank) position, with
// every higher-ranked element to its left. Uses Lomuto partitioning with the
// midpoint as pivot, which avoids the degenerate O(n^2) worst case on
// already-sorted input that a first-or-last pivot would hit.
func quickselect(cands []neuron.Candidate, lo, hi, target int) {
	for lo < hi {
		p := partition(cands, lo, hi, lo+(hi-lo)/2)
		switch {
		case target == p:
			return
		case target < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

func partition(cands []neuron.Candidate, lo, hi, pivotIdx int) int {
	pivot := cands[pivotIdx]
	cands[pivotIdx], cands[hi] = cands[hi], cands[pivotIdx]
	store := lo
	for i := lo; i < hi; i++ {
		if candidateRank(cands[i], pivot) {
			cands[store], cands[i] = cands[i], cands[store]
			store++
		}
	}
	cands[store], cands[hi] = cands[hi], cands[store]
	return store
}
