package solver

import (
	"container/heap"
	"sort"
)

// candidateQueue is a binary min-heap of candidates ordered by f, with
// deterministic tie-breaks: lower h, then fewer hops, then earlier
// insertion.
type candidateQueue struct {
	items   candidateHeap
	nextSeq uint64
}

func newCandidateQueue() *candidateQueue {
	return &candidateQueue{}
}

// Enqueue adds a candidate, stamping its insertion sequence.
func (q *candidateQueue) Enqueue(c *Candidate) {
	c.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.items, c)
}

// Dequeue removes and returns the best candidate, or nil when empty.
func (q *candidateQueue) Dequeue() *Candidate {
	if len(q.items) == 0 {
		return nil
	}
	return heap.Pop(&q.items).(*Candidate)
}

// PeekMany returns the best k candidates without removing them.
func (q *candidateQueue) PeekMany(k int) []*Candidate {
	if k > len(q.items) {
		k = len(q.items)
	}
	if k <= 0 {
		return nil
	}
	sorted := make(candidateHeap, len(q.items))
	copy(sorted, q.items)
	sort.Sort(sorted)
	return sorted[:k]
}

// Clear drops every queued candidate.
func (q *candidateQueue) Clear() {
	q.items = q.items[:0]
	q.nextSeq = 0
}

// Len returns the number of queued candidates.
func (q *candidateQueue) Len() int {
	return len(q.items)
}

// candidateHeap implements heap.Interface and sort.Interface.
type candidateHeap []*Candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.F != b.F {
		return a.F < b.F
	}
	if a.H != b.H {
		return a.H < b.H
	}
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}
	return a.seq < b.seq
}

func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(*Candidate))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
