package concordevm

// InterruptKind identifies why Interpreter.Cycle handed control back to
// the Scheduler. Mirrors the teacher's Stop enum in spirit — a small tag
// the caller switches on — but the cases are the cooperative-scheduling
// events the core spec names, not Io's loop-control-flow cases.
type InterruptKind uint8

const (
	// Ok means the instruction executed normally; the coroutine should be
	// requeued as Runnable (or the current cycle simply continues, at the
	// Scheduler's discretion).
	Ok InterruptKind = iota
	// Await means the coroutine executed an Await instruction and should
	// be suspended on a future.
	Await
	// CreateCoroutine means the coroutine executed a CreateCoroutine
	// instruction and a new coroutine plus future should be spawned.
	CreateCoroutine
	// Ret means the coroutine executed a Ret instruction and has
	// produced a final result.
	Ret
	// DeleteFuture means the coroutine executed a DeleteFuture
	// instruction.
	DeleteFuture
	// EOF means the program counter ran past the end of the program
	// without an explicit Ret; treated the same as Ret with an empty
	// result.
	EOF
	// Fault means the instruction could not execute and the coroutine
	// must be torn down; the Fault field carries the reason.
	Fault
)

func (k InterruptKind) String() string {
	switch k {
	case Ok:
		return "ok"
	case Await:
		return "await"
	case CreateCoroutine:
		return "create-coroutine"
	case Ret:
		return "ret"
	case DeleteFuture:
		return "delete-future"
	case EOF:
		return "eof"
	case Fault:
		return "fault"
	default:
		return "unknown"
	}
}

// Interrupt reports the outcome of a single Interpreter.Cycle call to the
// Scheduler driving it. Exactly the fields relevant to Kind are
// meaningful; it is a tagged struct rather than one type per kind for the
// same reason Instruction is, since the Scheduler switches on Kind once
// per cycle and a fixed struct avoids a type assertion there.
type Interrupt struct {
	Kind InterruptKind

	// Await fields.
	FutureID  FutureID
	WriteAddr uint

	// CreateCoroutine fields.
	EntryPC       uint
	Arg           []byte
	WriteFutureID uint

	// Ret / EOF fields.
	Result []byte

	// DeleteFuture fields.
	DeletedFuture FutureID

	// Fault field.
	Fault *Fault
}

// okInterrupt is returned after any instruction that neither suspends,
// forks, returns, nor faults.
func okInterrupt() Interrupt { return Interrupt{Kind: Ok} }

func awaitInterrupt(fut FutureID, writeAddr uint) Interrupt {
	return Interrupt{Kind: Await, FutureID: fut, WriteAddr: writeAddr}
}

func createCoroutineInterrupt(entryPC uint, arg []byte, writeFutureID uint) Interrupt {
	return Interrupt{Kind: CreateCoroutine, EntryPC: entryPC, Arg: arg, WriteFutureID: writeFutureID}
}

func retInterrupt(result []byte) Interrupt {
	return Interrupt{Kind: Ret, Result: result}
}

func eofInterrupt() Interrupt {
	return Interrupt{Kind: EOF, Result: nil}
}

func deleteFutureInterrupt(fut FutureID) Interrupt {
	return Interrupt{Kind: DeleteFuture, DeletedFuture: fut}
}

func faultInterrupt(f *Fault) Interrupt {
	return Interrupt{Kind: Fault, Fault: f}
}
