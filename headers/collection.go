package headers

import (
	"bytes"
	"io"
)

// entry is one parsed or programmatically-added header. Name is preserved
// byte-for-byte as it arrived on the wire (spec.md §8 property 6); Typed
// is non-nil when the name matched the registry. Raw holds the raw value
// bytes only for unregistered headers and those added with AddRaw; a
// typed entry keeps no raw bytes.
type entry struct {
	name  []byte
	raw   []byte
	typed Header
}

// Collection holds both typed and raw (name, value) headers, preserving
// insertion order, and is shared by parsed requests and outgoing
// responses.
type Collection struct {
	entries []entry
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add stores a parsed header: if name is registered, it is parsed into a
// typed Header and stored as such; otherwise name/value are kept raw.
// Matches spec.md §4.3 Step 2.
func (c *Collection) Add(name, value []byte) error {
	nameCopy := append([]byte(nil), name...)
	if IsRegistered(name) {
		h := MakeHeader(name)
		if err := h.ParseRaw(value); err != nil {
			return err
		}
		c.entries = append(c.entries, entry{name: nameCopy, typed: h})
		return nil
	}
	c.entries = append(c.entries, entry{name: nameCopy, raw: append([]byte(nil), value...)})
	return nil
}

// AddRaw stores name/value without attempting registry lookup, used by
// response code constructing headers that should pass through verbatim.
func (c *Collection) AddRaw(name, value []byte) {
	c.entries = append(c.entries, entry{
		name: append([]byte(nil), name...),
		raw:  append([]byte(nil), value...),
	})
}

// Get returns the raw value bytes of the first header matching name,
// case-insensitively, whether typed or raw.
func (c *Collection) Get(name string) ([]byte, bool) {
	target := lower([]byte(name))
	for _, e := range c.entries {
		if lower(e.name) == target {
			if e.typed != nil {
				var buf bytes.Buffer
				_ = e.typed.Write(&buf)
				return buf.Bytes(), true
			}
			return e.raw, true
		}
	}
	return nil, false
}

// TryGet returns the first typed header of type T in the collection.
// Mirrors http.cc's headers_.tryGet<Header::ContentLength>().
func TryGet[T Header](c *Collection) (T, bool) {
	var zero T
	for _, e := range c.entries {
		if t, ok := e.typed.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// Set replaces the first header whose typed value has the same concrete
// type as h, or appends h as a new entry if none exists. Used by the
// response serializer's Content-Type-or-append step (spec.md §4.5).
func (c *Collection) Set(h Header) {
	for i, e := range c.entries {
		if e.typed != nil && sameConcreteType(e.typed, h) {
			c.entries[i] = entry{name: []byte(h.Name()), typed: h}
			return
		}
	}
	c.entries = append(c.entries, entry{name: []byte(h.Name()), typed: h})
}

func sameConcreteType(a, b Header) bool {
	switch a.(type) {
	case *ContentLength:
		_, ok := b.(*ContentLength)
		return ok
	case *ContentType:
		_, ok := b.(*ContentType)
		return ok
	case *Host:
		_, ok := b.(*Host)
		return ok
	default:
		return false
	}
}

// Len returns the number of entries in the collection.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Reset clears the collection back to empty, for reuse across requests.
func (c *Collection) Reset() {
	c.entries = c.entries[:0]
}

// WriteTo serializes every header as "Name: Value\r\n", in insertion
// order, to w. Used by the response serializer (spec.md §4.5 step 4).
func (c *Collection) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range c.entries {
		n, err := w.Write(e.name)
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = io.WriteString(w, ": ")
		total += int64(n)
		if err != nil {
			return total, err
		}
		if e.typed != nil {
			var buf bytes.Buffer
			if err := e.typed.Write(&buf); err != nil {
				return total, err
			}
			n, err = w.Write(buf.Bytes())
		} else {
			n, err = w.Write(e.raw)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = io.WriteString(w, "\r\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
