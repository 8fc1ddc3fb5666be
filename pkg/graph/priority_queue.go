package graph

import "errors"

type pqNode struct {
	Rank float64
	Cost float64 // g-cost waktu di-insert
	Item int64
	seq  uint64
}

// less rank kecil duluan, kalau sama pakai urutan insert supaya hasil search deterministik.
func (a pqNode) less(b pqNode) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.seq < b.seq
}

// minHeap binary heap priorityqueue. Lazy deletion: entry stale dibuang waktu di-pop.
type minHeap struct {
	heap []pqNode
	seq  uint64
}

func newMinHeap() *minHeap {
	return &minHeap{heap: make([]pqNode, 0)}
}

func (h *minHeap) parent(index int) int {
	return (index - 1) / 2
}

func (h *minHeap) leftChild(index int) int {
	return 2*index + 1
}

func (h *minHeap) rightChild(index int) int {
	return 2*index + 2
}

// heapifyUp swap dengan parent selama parent lebih besar. O(logN).
func (h *minHeap) heapifyUp(index int) {
	for index != 0 && h.heap[index].less(h.heap[h.parent(index)]) {
		h.heap[index], h.heap[h.parent(index)] = h.heap[h.parent(index)], h.heap[index]
		index = h.parent(index)
	}
}

// heapifyDown swap dengan child terkecil selama child lebih kecil. O(logN).
func (h *minHeap) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.heap[left].less(h.heap[smallest]) {
			smallest = left
		}
		if right < len(h.heap) && h.heap[right].less(h.heap[smallest]) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.heap[index], h.heap[smallest] = h.heap[smallest], h.heap[index]
		index = smallest
	}
}

func (h *minHeap) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *minHeap) Size() int {
	return len(h.heap)
}

func (h *minHeap) Insert(rank, cost float64, item int64) {
	h.heap = append(h.heap, pqNode{Rank: rank, Cost: cost, Item: item, seq: h.seq})
	h.seq++
	h.heapifyUp(h.Size() - 1)
}

// ExtractMin ambil nilai minimum (index 0) & pop dari heap.
func (h *minHeap) ExtractMin() (pqNode, error) {
	if h.isEmpty() {
		return pqNode{}, errors.New("heap is empty")
	}
	root := h.heap[0]
	last := h.Size() - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]
	if !h.isEmpty() {
		h.heapifyDown(0)
	}
	return root, nil
}
