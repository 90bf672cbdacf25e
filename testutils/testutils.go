// Package testutils holds small builders for tests written outside package
// concordevm: scheduler construction, a run-to-completion check, and a
// program builder. None of this module's own test files import it. It is
// laid out the way the teacher's own testutils package held Io-specific parse/eval
// helpers — re-pointed here at programs, memory, and schedulers instead of
// messages and objects.
package testutils

import (
	"testing"

	"github.com/concordevm/concordevm"
	"github.com/stretchr/testify/require"
)

// NewScheduler builds a Scheduler with a no-op logger, for tests that
// don't care about fault logging output.
func NewScheduler() *concordevm.Scheduler {
	return concordevm.NewScheduler(concordevm.NewInterpreter(nil, nil), nil)
}

// RunToCompletion runs sched and fails the test immediately if it
// deadlocked, returning nothing further since most scheduling tests only
// care that every coroutine reached a terminal state.
func RunToCompletion(t testing.TB, sched *concordevm.Scheduler) {
	t.Helper()
	report := sched.Run()
	require.Nil(t, report, "unexpected deadlock: %+v", report)
}

// Program is a convenience alias so callers can write
// testutils.Program(concordevm.WriteInt(0, 1), concordevm.Ret(0, 8))
// instead of spelling out concordevm.NewProgram at every call site.
func Program(instructions ...concordevm.Instruction) concordevm.Program {
	return concordevm.NewProgram(instructions...)
}
