package s3thumbnail

// RunContext counts the items examined during one run. It is owned by the
// sequential enumeration loop and is not safe for concurrent use.
type RunContext struct {
	processed int
	limit     int
}

func NewRunContext(limit int) *RunContext {
	return &RunContext{limit: limit}
}

// Examine records one examined item.
func (r *RunContext) Examine() {
	r.processed++
}

// Exhausted reports whether the cap has been reached.
func (r *RunContext) Exhausted() bool {
	return r.processed >= r.limit
}

func (r *RunContext) Processed() int { return r.processed }
func (r *RunContext) Cap() int       { return r.limit }
