package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrdersByF(t *testing.T) {
	q := newCandidateQueue()
	a := &Candidate{F: 3}
	b := &Candidate{F: 1}
	c := &Candidate{F: 2}
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	assert.Same(t, b, q.Dequeue())
	assert.Same(t, c, q.Dequeue())
	assert.Same(t, a, q.Dequeue())
	assert.Nil(t, q.Dequeue())
}

func TestQueueTieBreaks(t *testing.T) {
	q := newCandidateQueue()

	// Equal f: lower h wins.
	highH := &Candidate{F: 5, H: 4}
	lowH := &Candidate{F: 5, H: 1}
	q.Enqueue(highH)
	q.Enqueue(lowH)
	assert.Same(t, lowH, q.Dequeue())
	assert.Same(t, highH, q.Dequeue())

	// Equal f and h: fewer hops wins.
	manyHops := &Candidate{F: 5, H: 2, Hops: 7}
	fewHops := &Candidate{F: 5, H: 2, Hops: 2}
	q.Enqueue(manyHops)
	q.Enqueue(fewHops)
	assert.Same(t, fewHops, q.Dequeue())
	assert.Same(t, manyHops, q.Dequeue())

	// Full tie: earlier insertion wins.
	first := &Candidate{F: 5, H: 2, Hops: 2}
	second := &Candidate{F: 5, H: 2, Hops: 2}
	q.Enqueue(first)
	q.Enqueue(second)
	assert.Same(t, first, q.Dequeue())
	assert.Same(t, second, q.Dequeue())
}

func TestQueuePeekMany(t *testing.T) {
	q := newCandidateQueue()
	for _, f := range []float64{4, 1, 3, 2} {
		q.Enqueue(&Candidate{F: f})
	}

	top := q.PeekMany(2)
	require.Len(t, top, 2)
	assert.Equal(t, 1.0, top[0].F)
	assert.Equal(t, 2.0, top[1].F)

	// Peeking does not consume.
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, 1.0, q.Dequeue().F)

	// Requests beyond the queue size are clamped.
	assert.Len(t, q.PeekMany(10), 3)
	assert.Nil(t, q.PeekMany(0))
}

func TestQueueClear(t *testing.T) {
	q := newCandidateQueue()
	q.Enqueue(&Candidate{F: 1})
	q.Enqueue(&Candidate{F: 2})
	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Dequeue())
}
