package search

// tileItem is a frontier entry: a tile, its priority key and the insertion
// sequence used to break ties deterministically.
type tileItem struct {
	idx      int
	priority float64
	seq      uint64
}

// tilePQ is a min-heap of tileItem ordered by priority, then seq.
// We use the "lazy-decrease-key" approach: an improved tile is pushed again and
// the outdated entry is skipped when popped (checked via Visited).
type tilePQ []tileItem

// Len returns the number of items in the heap.
func (pq tilePQ) Len() int { return len(pq) }

// Less orders by priority; equal priorities pop in insertion order.
func (pq tilePQ) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq tilePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x (a tileItem) onto the heap. Called by heap.Push.
func (pq *tilePQ) Push(x interface{}) { *pq = append(*pq, x.(tileItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *tilePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
