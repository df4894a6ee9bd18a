// Package query implements the request-line query parameter collection.
// Grounded on http.cc's Uri::Query, generalized per SPEC_FULL.md's
// resolution of the "source doesn't dedupe keys" open question: this is
// an insertion-ordered multimap, first-wins on Get, full history on
// GetAll. Keys and values are captured verbatim — no percent-decoding,
// per spec.md's explicit non-goal.
package query

// pair preserves insertion order across distinct keys.
type pair struct {
	key, value string
}

// Query is an ordered multimap from parameter name to value(s).
type Query struct {
	pairs []pair
}

// New returns an empty Query.
func New() *Query {
	return &Query{}
}

// Add appends a (name, value) pair, preserving insertion order. Existing
// pairs with the same name are left untouched.
func (q *Query) Add(name, value string) {
	q.pairs = append(q.pairs, pair{key: name, value: value})
}

// Get returns the first value added under name, following first-wins
// semantics.
func (q *Query) Get(name string) (string, bool) {
	for _, p := range q.pairs {
		if p.key == name {
			return p.value, true
		}
	}
	return "", false
}

// GetAll returns every value added under name, in insertion order.
func (q *Query) GetAll(name string) []string {
	var out []string
	for _, p := range q.pairs {
		if p.key == name {
			out = append(out, p.value)
		}
	}
	return out
}

// Len returns the total number of (name, value) pairs added, including
// repeats of the same name.
func (q *Query) Len() int {
	return len(q.pairs)
}

// Reset clears the query back to empty, for parser reuse across requests.
func (q *Query) Reset() {
	q.pairs = q.pairs[:0]
}
