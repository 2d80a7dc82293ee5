package light

import "container/heap"

type lightNode struct {
	x, y, z int
	level   uint8
}

// lightQueue is a max-priority queue keyed on remaining light level, so the
// brightest frontier voxel is always relaxed first.
type lightQueue struct {
	h nodeHeap
}

func newLightQueue() *lightQueue {
	return &lightQueue{}
}

func (q *lightQueue) push(n lightNode) {
	heap.Push(&q.h, n)
}

func (q *lightQueue) pop() lightNode {
	return heap.Pop(&q.h).(lightNode)
}

func (q *lightQueue) len() int {
	return q.h.Len()
}

type nodeHeap []lightNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].level > h[j].level }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(lightNode)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}
