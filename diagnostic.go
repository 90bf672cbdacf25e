package concordevm

import "gopkg.in/yaml.v2"

// DeadlockReport is produced when Scheduler.Run finds coroutines that can
// never become Runnable again. It is a plain marshalable struct rather
// than a Go error: a deadlock is expected operational behavior (it is how
// a circular Await graph looks from the outside), not a bug the Scheduler
// itself needs to report as failure, so the caller decides what to do
// with it.
type DeadlockReport struct {
	// Coroutines are the ids of every coroutine that was Suspended with
	// no way forward.
	Coroutines []CoroutineID `yaml:"coroutines"`
	// Futures are the ids of every future those coroutines were awaiting.
	Futures []FutureID `yaml:"futures"`
	// Edges describes, for debugging, which coroutine awaited which
	// future, so a reader can reconstruct the stuck wait graph.
	Edges []DeadlockEdge `yaml:"edges"`
}

// DeadlockEdge is one coroutine-awaits-future edge in a DeadlockReport.
type DeadlockEdge struct {
	Coroutine CoroutineID `yaml:"coroutine"`
	Future    FutureID    `yaml:"future"`
}

func newDeadlockReport(s *Scheduler, stuck []CoroutineID) *DeadlockReport {
	report := &DeadlockReport{Coroutines: stuck}
	seen := make(map[FutureID]struct{})
	for _, id := range stuck {
		coro := s.coroutines[id]
		report.Edges = append(report.Edges, DeadlockEdge{Coroutine: id, Future: coro.WaitingOn})
		if _, ok := seen[coro.WaitingOn]; !ok {
			seen[coro.WaitingOn] = struct{}{}
			report.Futures = append(report.Futures, coro.WaitingOn)
		}
	}
	return report
}

// YAML renders the report the way an operator would want to read it in a
// log line or a crash dump.
func (r *DeadlockReport) YAML() (string, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
