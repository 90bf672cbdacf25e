package concordevm

import "container/list"

// readyQueue orders runnable coroutines for the Scheduler. The base
// Scheduler uses fifoQueue; PriorityScheduler swaps in a heap-backed
// implementation instead, so the scheduling loop itself never needs to
// know which ordering is in effect.
type readyQueue interface {
	push(CoroutineID)
	pop() (CoroutineID, bool)
	len() int
}

// fifoQueue is a plain FIFO, matching the core spec's "coroutines run in
// the order they became runnable" default.
type fifoQueue struct {
	l *list.List
}

func newFIFOQueue() *fifoQueue {
	return &fifoQueue{l: list.New()}
}

func (q *fifoQueue) push(id CoroutineID) {
	q.l.PushBack(id)
}

func (q *fifoQueue) pop() (CoroutineID, bool) {
	e := q.l.Front()
	if e == nil {
		return 0, false
	}
	q.l.Remove(e)
	return e.Value.(CoroutineID), true
}

func (q *fifoQueue) len() int {
	return q.l.Len()
}
