package concordevm

import (
	"go.uber.org/zap"
)

// ExternalSource lets a Scheduler integrate with events arising outside
// its own coroutines, such as a network response or a timer — something
// spec.md §6 describes as the scheduler being driven by "external"
// completions in addition to coroutine Ret. Poll is given the chance to
// complete futures directly on the Scheduler (via CompleteFuture) and
// reports how many it applied. When blocking is true and the Scheduler
// has run out of runnable coroutines, Poll may block until it has
// something to apply or there is nothing left to wait for.
type ExternalSource interface {
	Poll(sched *Scheduler, blocking bool) (applied int, ok bool)
}

// Scheduler owns every Coroutine and Future in a single-threaded
// cooperative run: at any instant exactly one Coroutine is Running, and
// nothing yields control back to the Scheduler except the interrupts
// Interpreter.Cycle returns (Await, CreateCoroutine, Ret, DeleteFuture,
// EOF, Fault). This replaces the teacher's goroutine-per-coroutine,
// channel-driven design entirely: Scheduler.Run drives everything on the
// calling goroutine, and Coroutine/Future are plain maps it owns, not
// independently running VMs.
type Scheduler struct {
	interp *Interpreter
	log    *zap.Logger

	coroutines map[CoroutineID]*Coroutine
	futures    map[FutureID]*Future

	ready readyQueue

	nextCoroutineID CoroutineID
	nextFutureID    FutureID

	external ExternalSource
}

// NewScheduler builds an empty Scheduler driven by interp, logging to log
// (nil becomes zap.NewNop()).
func NewScheduler(interp *Interpreter, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		interp:     interp,
		log:        log,
		coroutines: make(map[CoroutineID]*Coroutine),
		futures:    make(map[FutureID]*Future),
		ready:      newFIFOQueue(),
	}
}

// SetExternalSource wires an ExternalSource into the Scheduler's run loop;
// see ExternalSource for when it is polled.
func (s *Scheduler) SetExternalSource(src ExternalSource) {
	s.external = src
}

// Spawn creates a top-level coroutine with no owning future — the entry
// point of a run — and enqueues it as Runnable.
func (s *Scheduler) Spawn(mem *Memory, prog Program) CoroutineID {
	s.nextCoroutineID++
	id := s.nextCoroutineID
	coro := NewCoroutine(id, mem, prog)
	s.coroutines[id] = coro
	s.ready.push(id)
	return id
}

// Coroutine returns the coroutine with the given id, if it is known to the
// scheduler. Coroutines stay known after they finish or are cancelled; the
// scheduler never removes them.
func (s *Scheduler) Coroutine(id CoroutineID) (*Coroutine, bool) {
	c, ok := s.coroutines[id]
	return c, ok
}

// Future returns the future with the given id, if still known.
func (s *Scheduler) Future(id FutureID) (*Future, bool) {
	f, ok := s.futures[id]
	return f, ok
}

func (s *Scheduler) enqueue(id CoroutineID) {
	s.ready.push(id)
}

// CompleteFuture resolves the future named by id with value and wakes
// every coroutine awaiting it, the same way a coroutine's own Ret would
// if id were its owning future. It is the entry point an ExternalSource
// outside this package — a timer wheel, an async I/O reactor — uses to
// feed a result back in, since such a source has no access to the
// Scheduler's unexported Future bookkeeping. Completing an unknown
// future returns a MissingFuture fault; completing one that is no
// longer Waiting returns DoubleComplete, since that is a scheduler-bug
// condition a driver made, not coro's.
func (s *Scheduler) CompleteFuture(id FutureID, value []byte) *Fault {
	fut, ok := s.futures[id]
	if !ok {
		f := NewFaultf(MissingFuture, "complete_future: no such future %d", id)
		s.log.Debug("complete_future failed", zap.Uint64("future", uint64(id)), zap.Error(f))
		return f
	}
	if fut.State != Waiting {
		f := NewFaultf(DoubleComplete, "future %d already %s", id, fut.State)
		s.log.Debug("complete_future failed", zap.Uint64("future", uint64(id)), zap.Error(f))
		return f
	}
	s.wakeDependants(fut.complete(value), value)
	return nil
}

// CancelFuture cancels the future named by id, faulting every coroutine
// awaiting it with a Deadlock fault. See CompleteFuture for the error
// cases; they apply identically here.
func (s *Scheduler) CancelFuture(id FutureID) *Fault {
	fut, ok := s.futures[id]
	if !ok {
		f := NewFaultf(MissingFuture, "cancel_future: no such future %d", id)
		s.log.Debug("cancel_future failed", zap.Uint64("future", uint64(id)), zap.Error(f))
		return f
	}
	if fut.State != Waiting {
		f := NewFaultf(DoubleComplete, "future %d already %s", id, fut.State)
		s.log.Debug("cancel_future failed", zap.Uint64("future", uint64(id)), zap.Error(f))
		return f
	}
	s.wakeDependantsWithFault(fut.cancel(), NewFaultf(Deadlock, "future %d cancelled externally", id))
	return nil
}

// Run drives coroutines to completion, one instruction cycle at a time,
// until nothing is runnable. If coroutines remain Suspended with no path
// to ever becoming Runnable again — no future they depend on can ever
// complete — Run resolves the deadlock by cancelling them and returns a
// non-nil DeadlockReport describing what was cancelled and why. A nil
// report means every coroutine reached Finished (or Cancelled via an
// ordinary fault, which is not a deadlock).
func (s *Scheduler) Run() *DeadlockReport {
	for {
		id, ok := s.ready.pop()
		if !ok {
			// Only worth blocking on an ExternalSource if something is
			// actually Suspended waiting for it; otherwise there is
			// nothing left to wake and blocking here would wait forever
			// on a source that has no more reason to send anything.
			if s.external != nil && s.hasSuspended() {
				if applied, more := s.external.Poll(s, true); applied > 0 || more {
					continue
				}
			}
			break
		}
		coro, ok := s.coroutines[id]
		if !ok || coro.State != Runnable {
			continue
		}
		s.runCoroutine(coro)
	}
	if report := s.detectDeadlock(); report != nil {
		s.resolveDeadlock(report)
		return report
	}
	return nil
}

// hasSuspended reports whether any coroutine is currently Suspended,
// i.e. there is someone left for an ExternalSource completion to wake.
func (s *Scheduler) hasSuspended() bool {
	for _, c := range s.coroutines {
		if c.State == Suspended {
			return true
		}
	}
	return false
}

// runCoroutine drives coro's Interpreter.Cycle step by step until it
// yields control back to the scheduler: there are no implicit yield
// points between instructions, so an Ok interrupt (and the bookkeeping
// interrupts CreateCoroutine and DeleteFuture) never leaves this loop.
// Only Await (on a still-Waiting future), Ret, EOF, and Fault actually
// take coro off the CPU.
func (s *Scheduler) runCoroutine(coro *Coroutine) {
	coro.State = Running
	for coro.State == Running {
		interrupt := s.interp.Cycle(coro)

		switch interrupt.Kind {
		case Ok:
			// Nothing to do; loop again on the same coroutine.

		case Await:
			s.handleAwait(coro, interrupt)

		case CreateCoroutine:
			s.handleCreateCoroutine(coro, interrupt)

		case Ret:
			s.completeCoroutine(coro, interrupt.Result)

		case EOF:
			s.completeCoroutine(coro, interrupt.Result)

		case DeleteFuture:
			s.handleDeleteFuture(coro, interrupt)

		case Fault:
			s.faultCoroutine(coro, interrupt.Fault)

		default:
			s.faultCoroutine(coro, NewFaultf(TypeParse, "unhandled interrupt kind %v", interrupt.Kind))
		}
	}
}

func (s *Scheduler) handleAwait(coro *Coroutine, interrupt Interrupt) {
	fut, ok := s.futures[interrupt.FutureID]
	if !ok {
		s.faultCoroutine(coro, NewFaultf(MissingFuture, "await: no such future %d", interrupt.FutureID))
		return
	}
	switch fut.State {
	case Complete:
		if f := coro.Memory.WriteBytes(interrupt.WriteAddr, fut.Value); f != nil {
			s.faultCoroutine(coro, f)
			return
		}
		// Already resolved: deliver the value and keep running coro
		// without ever suspending it.
	case Cancelled:
		s.faultCoroutine(coro, NewFaultf(Deadlock, "await: future %d was cancelled", fut.ID))
	default: // Waiting
		fut.addDependant(coro.ID)
		coro.suspend(fut.ID, interrupt.WriteAddr)
	}
}

func (s *Scheduler) handleCreateCoroutine(coro *Coroutine, interrupt Interrupt) {
	childMem := NewMemory(uint(len(interrupt.Arg)))
	if f := childMem.WriteBytes(0, interrupt.Arg); f != nil {
		s.faultCoroutine(coro, f)
		return
	}

	s.nextCoroutineID++
	childID := s.nextCoroutineID
	child := NewCoroutine(childID, childMem, coro.Program.Fork())
	child.PC = interrupt.EntryPC

	s.nextFutureID++
	fut := NewFuture(s.nextFutureID, childID)
	child.OwningFuture = fut.ID
	child.HasOwningFuture = true

	s.futures[fut.ID] = fut
	s.coroutines[childID] = child
	s.enqueue(childID)

	if f := coro.Memory.WriteUint64(interrupt.WriteFutureID, uint64(fut.ID)); f != nil {
		s.faultCoroutine(coro, f)
		return
	}
	// Per the CreateCoroutine rule, the parent keeps running — it is
	// never re-enqueued, only the child is.
}

func (s *Scheduler) handleDeleteFuture(coro *Coroutine, interrupt Interrupt) {
	fut, ok := s.futures[interrupt.DeletedFuture]
	if ok {
		if fut.State == Waiting {
			s.wakeDependantsWithFault(fut.cancel(), NewFaultf(MissingFuture, "future %d deleted while still awaited", fut.ID))
		}
		delete(s.futures, fut.ID)
	}
	// Bookkeeping only; coro keeps running.
}

// completeCoroutine finishes coro normally, resolving its owning future
// (if any) and waking every coroutine that was awaiting it.
func (s *Scheduler) completeCoroutine(coro *Coroutine, result []byte) {
	coro.finish(result)
	if !coro.HasOwningFuture {
		return
	}
	fut, ok := s.futures[coro.OwningFuture]
	if !ok {
		return
	}
	s.wakeDependants(fut.complete(result), result)
}

// faultCoroutine tears coro down due to an interpreter fault. Its owning
// future, if any, becomes Cancelled so dependants fault instead of
// silently waiting forever.
func (s *Scheduler) faultCoroutine(coro *Coroutine, f *Fault) {
	coro.cancel(f)
	s.log.Debug("coroutine cancelled", zap.Uint64("coroutine", uint64(coro.ID)), zap.Error(f))
	if !coro.HasOwningFuture {
		return
	}
	fut, ok := s.futures[coro.OwningFuture]
	if !ok {
		return
	}
	s.wakeDependantsWithFault(fut.cancel(), f)
}

func (s *Scheduler) wakeDependants(deps map[CoroutineID]struct{}, value []byte) {
	for id := range deps {
		dep, ok := s.coroutines[id]
		if !ok || dep.State != Suspended {
			continue
		}
		if f := dep.Memory.WriteBytes(dep.WriteAddr, value); f != nil {
			s.faultCoroutine(dep, f)
			continue
		}
		dep.State = Runnable
		s.enqueue(dep.ID)
	}
}

func (s *Scheduler) wakeDependantsWithFault(deps map[CoroutineID]struct{}, f *Fault) {
	for id := range deps {
		dep, ok := s.coroutines[id]
		if !ok || dep.State != Suspended {
			continue
		}
		s.faultCoroutine(dep, f)
	}
}

// detectDeadlock reports every coroutine still Suspended once the ready
// queue (and external source) has nothing left to contribute. Such a
// coroutine can never run again: whatever it awaits depends, transitively,
// on a coroutine that itself has no path to Runnable.
func (s *Scheduler) detectDeadlock() *DeadlockReport {
	var stuck []CoroutineID
	for id, c := range s.coroutines {
		if c.State == Suspended {
			stuck = append(stuck, id)
		}
	}
	if len(stuck) == 0 {
		return nil
	}
	return newDeadlockReport(s, stuck)
}

// resolveDeadlock cancels every coroutine named in report, waking their
// own dependants in turn so the whole stuck component unwinds instead of
// leaving silent garbage behind.
func (s *Scheduler) resolveDeadlock(report *DeadlockReport) {
	for _, id := range report.Coroutines {
		coro, ok := s.coroutines[id]
		if !ok || coro.State != Suspended {
			continue
		}
		s.faultCoroutine(coro, NewFaultf(Deadlock, "coroutine %d deadlocked", id))
	}
}
