package quiz

// Outcome is the terminal result of a generation attempt.
type Outcome int

const (
	// OutcomeNone: the attempt is still running, or the event arrived
	// after the attempt already terminated and was dropped.
	OutcomeNone Outcome = iota
	// OutcomeComplete: generation finished with at least one question.
	OutcomeComplete
	// OutcomeFailed: generation produced nothing usable; the caller
	// returns to the upload phase.
	OutcomeFailed
)

// Generation accumulates questions for a single streaming attempt and
// guarantees the terminal transition fires at most once, no matter how the
// transport misbehaves. Each attempt carries the Session's monotonically
// increasing attempt id so late events from an abandoned attempt are
// provably distinguishable from current ones.
type Generation struct {
	Attempt    int
	Questions  []Question
	FailureMsg string

	terminal bool
	outcome  Outcome
}

// NewGeneration starts accumulation for the given attempt id.
func NewGeneration(attempt int) *Generation {
	return &Generation{Attempt: attempt}
}

// Terminal reports whether the attempt has already reached its outcome.
func (g *Generation) Terminal() bool {
	return g.terminal
}

// Outcome returns the terminal outcome, or OutcomeNone while running.
func (g *Generation) Outcome() Outcome {
	return g.outcome
}

// ApplyQuestion appends a streamed question in arrival order. Arrival order
// is the display order: no reordering, no dedup by content. Returns false
// if the attempt already terminated.
func (g *Generation) ApplyQuestion(q Question) bool {
	if g.terminal {
		return false
	}
	g.Questions = append(g.Questions, q)
	return true
}

// ApplyDone handles the explicit done signal: success if at least one
// question arrived, failure otherwise.
func (g *Generation) ApplyDone() Outcome {
	if g.terminal {
		return OutcomeNone
	}
	g.terminal = true
	if len(g.Questions) > 0 {
		g.outcome = OutcomeComplete
	} else {
		g.FailureMsg = "generation finished, but no questions were created"
		g.outcome = OutcomeFailed
	}
	return g.outcome
}

// ApplyError handles an explicit error event from the stream. Error takes
// precedence over partial accumulation: any questions received so far are
// discarded and the attempt fails.
func (g *Generation) ApplyError(details string) Outcome {
	if g.terminal {
		return OutcomeNone
	}
	g.terminal = true
	g.Questions = nil
	g.FailureMsg = details
	g.outcome = OutcomeFailed
	return g.outcome
}

// ApplyDrop handles a transport-level failure (connection closed without a
// done or error event). Accumulated questions decide the outcome: non-empty
// means success, empty means failure. There is no reconnect; a dropped
// stream is terminal for the attempt.
func (g *Generation) ApplyDrop() Outcome {
	if g.terminal {
		return OutcomeNone
	}
	g.terminal = true
	if len(g.Questions) > 0 {
		g.outcome = OutcomeComplete
	} else {
		g.FailureMsg = "stream connection lost before any questions arrived"
		g.outcome = OutcomeFailed
	}
	return g.outcome
}
