package concordevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanSourceCompletesAwaitingCoroutine(t *testing.T) {
	src := NewChanSource(1)
	sched := newTestScheduler()
	sched.SetExternalSource(src)

	// Spawn a coroutine that awaits an externally-resolved future. Since
	// nothing creates this future through CreateCoroutine, register it
	// directly, the way an embedder wiring in an outside event source
	// would.
	sched.nextFutureID = 5
	fut := NewFuture(5, 0)
	sched.futures[5] = fut

	mem := NewMemory(16)
	require.Nil(t, mem.WriteUint64(0, 5))
	prog := NewProgram(Await(0, 8), Ret(8, 8))
	id := sched.Spawn(mem, prog)

	src.Complete(5, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	report := sched.Run()
	require.Nil(t, report)

	coro, ok := sched.Coroutine(id)
	require.True(t, ok)
	assert.Equal(t, Finished, coro.State)
}
