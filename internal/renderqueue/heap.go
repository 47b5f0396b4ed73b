package renderqueue

import "container/heap"

// jobHeap implements heap.Interface for priority queue ordering.
// Jobs are ordered by tier (interactive before background), then by
// SubmittedAt for FIFO within a tier.
type jobHeap []*Job

var _ heap.Interface = (*jobHeap)(nil)

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].Tier != h[j].Tier {
		return h[i].Tier < h[j].Tier
	}
	return h[i].SubmittedAt.Before(h[j].SubmittedAt)
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *jobHeap) Push(x any) {
	n := len(*h)
	job := x.(*Job)
	job.heapIndex = n
	*h = append(*h, job)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	job := old[n-1]
	old[n-1] = nil
	job.heapIndex = -1
	*h = old[0 : n-1]
	return job
}

// Fix re-establishes the heap ordering after the element at index i has
// changed.
func (h *jobHeap) Fix(i int) {
	heap.Fix(h, i)
}
