package concordevm

import (
	"fmt"

	"github.com/pkg/errors"
)

// FaultKind classifies a Fault by which part of the error taxonomy in the
// core spec it belongs to.
type FaultKind int

// The fault kinds named by the core specification's error taxonomy.
const (
	// OutOfBounds indicates a read, write, or memcpy past a Memory's
	// capacity.
	OutOfBounds FaultKind = iota
	// TypeParse indicates a decode failure: invalid UTF-8, a truncated
	// slice, or similar.
	TypeParse
	// DivisionByZero indicates a Div or Mod with a zero divisor.
	DivisionByZero
	// MissingFuture indicates an Await or complete against an unknown
	// FutureID.
	MissingFuture
	// DoubleComplete indicates a complete_future call against a Future that
	// is not Waiting. This is a scheduler bug, not a coroutine fault.
	DoubleComplete
	// Deadlock indicates the ready queue is empty, coroutines remain
	// Suspended, and no ExternalSource could complete anything. It is
	// also the kind delivered to coroutines awaiting a cancelled future.
	Deadlock
	// IOError indicates a failure surfaced by the IO subsystem.
	IOError
)

var faultKindNames = [...]string{
	"out of bounds",
	"type parse",
	"division by zero",
	"missing future",
	"double complete",
	"deadlock",
	"io error",
}

// String returns the name of the fault kind.
func (k FaultKind) String() string {
	if k < OutOfBounds || k > IOError {
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
	return faultKindNames[k]
}

// A Fault is the VM's error type. It carries a FaultKind distinguishing the
// taxonomy described in the core spec's error handling design, plus the
// wrapped cause and, when the fault originated while executing an
// instruction, the coroutine and program location at which it happened.
type Fault struct {
	Kind FaultKind
	Err  error

	// CoroutineID and PC are set when the fault originated in a call to
	// Interpreter.Cycle; they are the zero value otherwise (for example, a
	// Deadlock fault has no single originating coroutine).
	CoroutineID CoroutineID
	PC          uint
	HasLocation bool
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.HasLocation {
		return fmt.Sprintf("%s (coroutine %d, pc %d): %s", f.Kind, f.CoroutineID, f.PC, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Err)
}

// Unwrap returns the wrapped cause, so errors.Is and errors.As see through a
// Fault to whatever github.com/pkg/errors context it carries.
func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault builds a Fault of the given kind wrapping err with the formatted
// message as additional context.
func NewFault(kind FaultKind, err error, format string, args ...interface{}) *Fault {
	return &Fault{
		Kind: kind,
		Err:  errors.Wrapf(err, format, args...),
	}
}

// NewFaultf builds a Fault of the given kind from a formatted message alone.
func NewFaultf(kind FaultKind, format string, args ...interface{}) *Fault {
	return &Fault{
		Kind: kind,
		Err:  errors.Errorf(format, args...),
	}
}

// at returns a copy of f with its originating location set. Used by the
// interpreter to annotate a fault with the coroutine and pc that raised it
// without requiring every opcode handler to know about coroutines.
func (f *Fault) at(coro CoroutineID, pc uint) *Fault {
	g := *f
	g.CoroutineID = coro
	g.PC = pc
	g.HasLocation = true
	return &g
}
