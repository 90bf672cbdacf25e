package concordevm

import (
	"container/heap"

	"go.uber.org/zap"
)

// priorityItem is one entry in the priority ready-queue's heap: higher
// Priority runs first, and among equal priorities, earlier Seq (insertion
// order) runs first, so the ordering degrades to FIFO within a priority
// band the same way the base Scheduler behaves across the board.
type priorityItem struct {
	id       CoroutineID
	priority int
	seq      uint64
}

// priorityQueue is a container/heap.Interface over priorityItem, used by
// NewPriorityScheduler in place of the base Scheduler's fifoQueue.
type priorityQueue struct {
	items []priorityItem
	next  uint64

	// priorityOf looks up a coroutine's current Priority at push time,
	// since the queue itself does not own the Coroutine map.
	priorityOf func(CoroutineID) int
}

func (q *priorityQueue) Len() int { return len(q.items) }

func (q *priorityQueue) Less(i, j int) bool {
	if q.items[i].priority != q.items[j].priority {
		return q.items[i].priority > q.items[j].priority
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *priorityQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *priorityQueue) Push(x interface{}) {
	q.items = append(q.items, x.(priorityItem))
}

func (q *priorityQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *priorityQueue) push(id CoroutineID) {
	q.next++
	heap.Push(q, priorityItem{id: id, priority: q.priorityOf(id), seq: q.next})
}

func (q *priorityQueue) pop() (CoroutineID, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	item := heap.Pop(q).(priorityItem)
	return item.id, true
}

func (q *priorityQueue) len() int { return q.Len() }

// NewPriorityScheduler builds a Scheduler identical to NewScheduler except
// that its ready queue orders coroutines by Coroutine.Priority (highest
// first) instead of strict FIFO. Priority is read at the moment a
// coroutine is enqueued, so changing it between runs affects future
// scheduling decisions but never reorders work already queued.
func NewPriorityScheduler(interp *Interpreter, log *zap.Logger) *Scheduler {
	s := NewScheduler(interp, log)
	s.ready = &priorityQueue{
		priorityOf: func(id CoroutineID) int {
			if c, ok := s.coroutines[id]; ok {
				return c.Priority
			}
			return 0
		},
	}
	return s
}
