package concordevm

// CoroutineID uniquely identifies a coroutine for the lifetime of a
// Scheduler. Ids are assigned in increasing order and never reused, so a
// stale id is always distinguishable from a live one.
type CoroutineID uint64

// CoroutineState is where a coroutine sits in its lifecycle. Exactly one
// coroutine may be Running at a time; everything else about scheduling
// follows from transitions between these five states.
type CoroutineState uint8

const (
	// Runnable coroutines are queued and waiting for their turn.
	Runnable CoroutineState = iota
	// Suspended coroutines are blocked on a Future and are not queued.
	Suspended
	// Running is the single coroutine currently executing a Cycle.
	Running
	// Finished coroutines have returned (Ret or fell off the end) and
	// their result has been delivered to whatever awaits them.
	Finished
	// Cancelled coroutines were torn down by a fault (their own, one
	// delivered through a future they awaited, or a deadlock) and never
	// produced a result.
	Cancelled
)

func (s CoroutineState) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Coroutine is one cooperatively-scheduled unit of execution: its own
// linear memory, a program counter into a shared Program, and the state
// needed to suspend and resume it without a goroutine of its own. A
// Coroutine is an inert data structure owned and driven entirely by its
// Scheduler; nothing about it is safe for concurrent access from more than
// one goroutine.
type Coroutine struct {
	ID    CoroutineID
	State CoroutineState

	Memory  *Memory
	Program Program
	PC      uint

	// Priority only matters to PriorityScheduler; the base Scheduler
	// ignores it and runs coroutines in FIFO order.
	Priority int

	// WaitingOn is the future this coroutine is Suspended on, valid only
	// while State == Suspended.
	WaitingOn FutureID
	// WriteAddr is where the future's eventual payload will be written in
	// this coroutine's memory once WaitingOn completes.
	WriteAddr uint

	// Result holds the bytes passed to Ret once State == Finished.
	Result []byte

	// Fault is set when the coroutine was torn down by an interpreter
	// fault rather than a normal Ret; State is then always Cancelled.
	Fault *Fault

	// OwningFuture is the future, if any, that this coroutine's
	// completion resolves — the future CreateCoroutine handed back to
	// whoever spawned it. The root coroutine of a Scheduler has none.
	OwningFuture    FutureID
	HasOwningFuture bool
}

// NewCoroutine builds a coroutine ready to run prog from pc 0 against mem.
func NewCoroutine(id CoroutineID, mem *Memory, prog Program) *Coroutine {
	return &Coroutine{
		ID:      id,
		State:   Runnable,
		Memory:  mem,
		Program: prog,
	}
}

// suspend parks the coroutine on a future, recording where its eventual
// value should land.
func (c *Coroutine) suspend(fut FutureID, writeAddr uint) {
	c.State = Suspended
	c.WaitingOn = fut
	c.WriteAddr = writeAddr
}

// finish marks the coroutine Finished with the given result payload.
func (c *Coroutine) finish(result []byte) {
	c.State = Finished
	c.Result = result
}

// cancel marks the coroutine Cancelled, attaching the fault that caused the
// cancellation (a Deadlock fault when the deadlock sweep cancels it).
func (c *Coroutine) cancel(f *Fault) {
	c.State = Cancelled
	c.Fault = f
}
