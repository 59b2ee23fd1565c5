package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersStartAtZero(t *testing.T) {
	m := NewRegistry()
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Ticks))
	m.Ticks.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Ticks))
}

func TestGathererReturnsRegisteredMetrics(t *testing.T) {
	m := NewRegistry()
	m.SpikesFired.Add(3)
	families, err := m.Gatherer().Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
