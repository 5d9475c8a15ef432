package oracle

import (
	"github.com/azybler/mapmatch/pkg/model"
)

// minHeap is a concrete-typed min-heap for the Dijkstra priority queue,
// avoiding interface-boxing overhead versus container/heap. Single-
// directional only, since the oracle runs one bounded Dijkstra per query
// rather than a bidirectional search.
type minHeap struct {
	items []pqItem
}

type pqItem struct {
	node model.VertexID
	dist float64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node model.VertexID, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
