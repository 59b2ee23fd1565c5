package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnqueueDrainOrdering(t *testing.T) {
	q := New()
	q.Enqueue(5, 10)
	q.Enqueue(2, 10)
	q.Enqueue(9, 11)
	q.Enqueue(1, 10)

	got := q.DrainTick(10)
	assert.Equal(t, []Spike{{Pre: 1, EmitTick: 10}, {Pre: 2, EmitTick: 10}, {Pre: 5, EmitTick: 10}}, got)
	assert.Equal(t, 1, q.Len())

	got = q.DrainTick(11)
	assert.Equal(t, []Spike{{Pre: 9, EmitTick: 11}}, got)
	assert.Equal(t, 0, q.Len())
}

func TestDrainTickEmpty(t *testing.T) {
	q := New()
	assert.Nil(t, q.DrainTick(0))
}

func TestClear(t *testing.T) {
	q := New()
	q.Enqueue(1, 1)
	q.Enqueue(2, 2)
	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.DrainTick(1))
}
