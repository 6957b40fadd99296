package planner

// pqItem is one entry in the Dijkstra priority queue: a node paired
// with the accumulated cost to reach it via the path that pushed it.
type pqItem struct {
	cost float64
	node int
}

// priorityQueue is a min-heap of pqItem ordered by cost. Determinism
// on equal-cost paths does not come from heap pop order (container/heap
// makes no ordering guarantee among equal keys) — it comes from
// shortestPath only overwriting dist[v] on a strictly smaller cost, so
// whichever equal-cost path relaxes v first keeps it, in the fixed
// node-index enumeration order.
type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].cost < pq[j].cost
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
