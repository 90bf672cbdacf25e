package concordevm

// externalCompletion is one pending resolution delivered through a
// chanSource: complete the named future with value, unless cancel is
// true, in which case the future is cancelled instead.
type externalCompletion struct {
	future FutureID
	value  []byte
	cancel bool
}

// chanSource is an ExternalSource backed by a buffered Go channel,
// letting code outside the Scheduler's own goroutine-free run loop (an
// HTTP handler, a timer, a test) feed future completions into it without
// the Scheduler needing to know anything about where they come from.
type chanSource struct {
	completions chan externalCompletion
}

// NewChanSource returns a chanSource with the given completion buffer
// size. A size of 0 means callers must coordinate with Poll(blocking =
// true) themselves to avoid deadlocking on a send.
func NewChanSource(buffer int) *chanSource {
	return &chanSource{completions: make(chan externalCompletion, buffer)}
}

// Complete schedules fut to be completed with value the next time the
// Scheduler polls this source.
func (c *chanSource) Complete(fut FutureID, value []byte) {
	c.completions <- externalCompletion{future: fut, value: value}
}

// Cancel schedules fut to be cancelled the next time the Scheduler polls
// this source.
func (c *chanSource) Cancel(fut FutureID) {
	c.completions <- externalCompletion{future: fut, cancel: true}
}

// Poll implements ExternalSource. When blocking is true (the Scheduler has
// nothing else runnable), Poll waits for at least one completion before
// returning; otherwise it drains whatever is already buffered without
// waiting.
func (c *chanSource) Poll(sched *Scheduler, blocking bool) (applied int, ok bool) {
	apply := func(ec externalCompletion) {
		var f *Fault
		if ec.cancel {
			f = sched.CancelFuture(ec.future)
		} else {
			f = sched.CompleteFuture(ec.future, ec.value)
		}
		if f == nil {
			applied++
		}
	}

	if blocking {
		ec, open := <-c.completions
		if !open {
			return applied, false
		}
		apply(ec)
	}

	for {
		select {
		case ec, open := <-c.completions:
			if !open {
				return applied, applied > 0
			}
			apply(ec)
		default:
			return applied, applied > 0
		}
	}
}
