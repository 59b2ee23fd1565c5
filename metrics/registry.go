/*
=================================================================================
OPTIONAL PROMETHEUS INSTRUMENTATION
=================================================================================

No instrumentation library appears anywhere in the teacher's own dependency
graph, but the wider retrieval pack's etalazz-vsa module — itself a
biologically-flavoured hyperdimensional-memory engine, the closest analogue
to this one in the pack that ships real production metrics — wires
github.com/prometheus/client_golang directly. This package follows that lead.

The Network and UKS never require a Registry: it is attached at construction
time only if the host wants it, and every counter/gauge update sits behind a
nil check so the hot tick loop pays nothing when it is absent.
=================================================================================
*/
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles the handful of counters and gauges a host may want to
// scrape from a running engine: ticks executed, spikes fired, columns
// allocated, and panic resets triggered.
type Registry struct {
	reg *prometheus.Registry

	Ticks           prometheus.Counter
	SpikesFired     prometheus.Counter
	ColumnsAllocated prometheus.Counter
	PanicResets     prometheus.Counter
	CandidateCount  prometheus.Gauge
}

// NewRegistry builds a Registry backed by a fresh, isolated
// prometheus.Registry (never the global DefaultRegisterer — a host embedding
// more than one engine in the same process must not collide on metric
// names).
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	m := &Registry{
		reg: r,
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparknet_ticks_total",
			Help: "Total number of Network.Step calls executed.",
		}),
		SpikesFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparknet_spikes_fired_total",
			Help: "Total number of neuron firings across all ticks.",
		}),
		ColumnsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparknet_columns_allocated_total",
			Help: "Total number of cortical columns allocated by the UKS.",
		}),
		PanicResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sparknet_panic_resets_total",
			Help: "Total number of norepinephrine-triggered panic resets.",
		}),
		CandidateCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sparknet_last_candidate_count",
			Help: "Number of above-threshold candidates collected in the most recent Firing phase, before Razor selection.",
		}),
	}
	r.MustRegister(m.Ticks, m.SpikesFired, m.ColumnsAllocated, m.PanicResets, m.CandidateCount)
	return m
}

// Gatherer exposes the underlying prometheus.Registry for a host that wants
// to serve /metrics itself (wiring an HTTP handler is the host's job, not
// the core's — the core never performs I/O of its own).
func (m *Registry) Gatherer() prometheus.Gatherer { return m.reg }
