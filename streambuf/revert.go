package streambuf

// Revert is a cursor checkpoint. Callers capture one at the start of a
// parse step and `defer revert.Restore()`; if the step returns before
// calling Ignore, the cursor position is rolled back to the capture
// point. This is the Go stand-in for the source's scope-exit Revert
// (spec.md §4.2, §9 "Design Notes").
type Revert struct {
	cursor  *Cursor
	start   int
	ignored bool
}

// NewRevert captures the cursor's current position.
func NewRevert(c *Cursor) *Revert {
	return &Revert{cursor: c, start: c.pos}
}

// Ignore commits the cursor's current position: a subsequent Restore
// becomes a no-op.
func (r *Revert) Ignore() {
	r.ignored = true
}

// Restore rolls the cursor back to the capture position unless Ignore was
// called first. Intended to be deferred immediately after NewRevert.
func (r *Revert) Restore() {
	if !r.ignored {
		r.cursor.pos = r.start
	}
}
