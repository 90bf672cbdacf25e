package concordevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrioritySchedulerRunsHigherPriorityFirst(t *testing.T) {
	sched := NewPriorityScheduler(NewInterpreter(nil, nil), nil)

	var order []CoroutineID
	order = nil

	// Each coroutine is a one-instruction program that is never run here;
	// the order is read back by popping the ready queue directly.
	low := NewCoroutine(0, NewMemory(8), NewProgram(Ret(0, 0)))
	low.Priority = 1
	high := NewCoroutine(0, NewMemory(8), NewProgram(Ret(0, 0)))
	high.Priority = 10

	sched.coroutines[1] = low
	low.ID = 1
	sched.coroutines[2] = high
	high.ID = 2
	sched.nextCoroutineID = 2

	// Push low first, then high: with a FIFO queue low would run first;
	// with priority ordering high must run first despite being queued
	// second.
	sched.ready.push(1)
	sched.ready.push(2)

	for {
		id, ok := sched.ready.pop()
		if !ok {
			break
		}
		order = append(order, id)
	}

	require.Len(t, order, 2)
	assert.Equal(t, CoroutineID(2), order[0])
	assert.Equal(t, CoroutineID(1), order[1])
}
