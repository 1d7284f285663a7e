package harness

// TraceEvent is one executed step as recorded in the journal.
type TraceEvent struct {
	Seq    int64    `json:"seq"`
	Op     string   `json:"op"`
	Args   []string `json:"args"`
	Result string   `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Failed reports whether the step returned an error.
func (e TraceEvent) Failed() bool {
	return e.Error != ""
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// SessionID identifies the journal session of the run.
	SessionID string `json:"session_id"`

	// Trace contains every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(sessionID string) *Result {
	return &Result{
		Pass:      true,
		SessionID: sessionID,
		Trace:     []TraceEvent{},
		Errors:    []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an executed step to the trace.
func (r *Result) AddTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
