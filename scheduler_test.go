package concordevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(NewInterpreter(nil, nil), nil)
}

func TestSchedulerArithmeticScenario(t *testing.T) {
	// mem[0] = 7, mem[8] = 35, mem[16] = mem[0] + mem[8]; return mem[16].
	prog := NewProgram(
		WriteInt(0, 7),
		WriteInt(8, 35),
		Add(0, 8, 16),
		Ret(16, 8),
	)
	mem := NewMemory(24)
	sched := newTestScheduler()
	id := sched.Spawn(mem, prog)
	report := sched.Run()
	require.Nil(t, report)

	coro, ok := sched.Coroutine(id)
	require.True(t, ok)
	assert.Equal(t, Finished, coro.State)
	v, f := mem.ReadInt64(16)
	require.Nil(t, f)
	assert.EqualValues(t, 42, v)
	assert.Equal(t, mem.Dump()[16:24], coro.Result)
}

func TestSchedulerBranchScenario(t *testing.T) {
	// if mem[0] > mem[8] jump to pc 5 (write 1 at 16), skipping pc 4 (write
	// 0 at 16); a fall-through runs pc 4 and then pc 5 as well. Return
	// mem[16].
	prog := NewProgram(
		WriteInt(0, 10),           // 0
		WriteInt(8, 3),            // 1
		CompareGreater(0, 8, 17),  // 2 -> bool at addr 17
		JumpIfTrue(5, 17),         // 3
		WriteInt(16, 0),           // 4 (skipped)
		WriteInt(16, 1),           // 5
		Ret(16, 8),                // 6
	)
	mem := NewMemory(32)
	sched := newTestScheduler()
	sched.Spawn(mem, prog)
	report := sched.Run()
	require.Nil(t, report)
	v, f := mem.ReadInt64(16)
	require.Nil(t, f)
	assert.EqualValues(t, 1, v)
}

func TestSchedulerAwaitSpawnScenario(t *testing.T) {
	// Parent spawns a child at pc 3 that computes 100+23 and returns it;
	// parent awaits the resulting future and writes the value at 64.
	childResult := uint(8)
	prog := NewProgram(
		// parent: 0, 1
		CreateCoroutine(3, 0, 0, 32), // 0: spawn child at pc 3, no arg, write future id at 32
		Await(32, 64),                // 1: await it, write result at 64
		NoOp,                         // 2 (padding so the child's entry pc is distinct from the parent's)

		// child, entry pc 3
		MemExtend(16),          // 3: the child starts with zero-length memory (no arg was passed)
		WriteInt(0, 100),       // 4
		WriteInt(8, 23),        // 5
		Add(0, 8, childResult), // 6
		Ret(childResult, 8),    // 7
	)
	mem := NewMemory(72)
	sched := newTestScheduler()
	sched.Spawn(mem, prog)
	report := sched.Run()
	require.Nil(t, report)

	v, f := mem.ReadInt64(64)
	require.Nil(t, f)
	assert.EqualValues(t, 123, v)
}

func TestSchedulerDivisionByZeroFaultsOnlyThatCoroutine(t *testing.T) {
	prog := NewProgram(
		WriteInt(0, 5),
		WriteInt(8, 0),
		Div(0, 8, 16),
		Ret(16, 8),
	)
	mem := NewMemory(24)
	sched := newTestScheduler()
	id := sched.Spawn(mem, prog)
	report := sched.Run()
	assert.Nil(t, report, "a faulted coroutine with no dependants is not a deadlock")

	coro, ok := sched.Coroutine(id)
	require.True(t, ok)
	assert.Equal(t, Cancelled, coro.State)
	require.NotNil(t, coro.Fault)
	assert.Equal(t, DivisionByZero, coro.Fault.Kind)
}

func TestSchedulerDeadlockDetection(t *testing.T) {
	// Two coroutines suspended on each other's futures, constructed
	// directly: a true mutual-wait cycle can't be expressed through a
	// single CreateCoroutine chain, since a coroutine only ever learns
	// about futures it spawned or was handed, so the graph is built here
	// the way a scheduler would see it mid-run.
	sched := newTestScheduler()

	memA := NewMemory(8)
	memB := NewMemory(8)
	coroA := NewCoroutine(1, memA, NewProgram())
	coroB := NewCoroutine(2, memB, NewProgram())
	sched.coroutines[1] = coroA
	sched.coroutines[2] = coroB

	futA := NewFuture(10, 1)
	futB := NewFuture(11, 2)
	sched.futures[10] = futA
	sched.futures[11] = futB

	coroA.suspend(11, 0)
	futB.addDependant(1)
	coroB.suspend(10, 0)
	futA.addDependant(2)

	report := sched.Run()
	require.NotNil(t, report)
	assert.ElementsMatch(t, []CoroutineID{1, 2}, report.Coroutines)
	assert.Equal(t, Cancelled, coroA.State)
	assert.Equal(t, Cancelled, coroB.State)
	assert.Equal(t, Deadlock, coroA.Fault.Kind)
}

func TestSchedulerDeleteFutureDoesNotBlockParent(t *testing.T) {
	// Parent spawns a child and immediately deletes the resulting future
	// without awaiting it; the parent must still finish normally.
	prog := NewProgram(
		CreateCoroutine(4, 0, 0, 32), // 0: spawn child at pc 4
		DeleteFuture(32),             // 1: drop the future before awaiting it
		Ret(0, 0),                    // 2
		NoOp,                         // 3 (padding so child's entry pc is distinct)

		MemExtend(8),   // 4: child starts with zero-length memory (no arg was passed)
		WriteInt(0, 1), // 5
		Ret(0, 8),      // 6
	)
	mem := NewMemory(64)
	sched := newTestScheduler()
	id := sched.Spawn(mem, prog)
	report := sched.Run()
	assert.Nil(t, report)

	coro, ok := sched.Coroutine(id)
	require.True(t, ok)
	assert.Equal(t, Finished, coro.State)
}

func TestSchedulerDeleteFutureWakesDependantsWithFault(t *testing.T) {
	// A coroutine awaiting a future that is deleted out from under it
	// must be woken with a MissingFuture fault rather than left stuck.
	sched := newTestScheduler()

	memOwner := NewMemory(8)
	memWaiter := NewMemory(8)
	owner := NewCoroutine(1, memOwner, NewProgram())
	waiter := NewCoroutine(2, memWaiter, NewProgram())
	sched.coroutines[1] = owner
	sched.coroutines[2] = waiter

	fut := NewFuture(5, 1)
	sched.futures[5] = fut
	waiter.suspend(5, 0)
	fut.addDependant(2)

	sched.handleDeleteFuture(owner, Interrupt{Kind: DeleteFuture, DeletedFuture: 5})

	assert.Equal(t, Cancelled, waiter.State)
	require.NotNil(t, waiter.Fault)
	assert.Equal(t, MissingFuture, waiter.Fault.Kind)
	_, stillExists := sched.futures[5]
	assert.False(t, stillExists)
}
