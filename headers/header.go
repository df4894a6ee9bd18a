// Package headers implements the registered-header registry and the typed
// header collection shared by parsed requests and outgoing responses.
// Grounded on http.cc's Header::Registry / Header::Collection contract
// (spec.md §4.3 Step 2, §6 "Header Registry").
package headers

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/bthrall/pistache/mime"
)

// Header is a single registered, typed header value. Concrete types
// (ContentLength, ContentType, Host) implement parsing and serialization
// of their own raw value.
type Header interface {
	Name() string
	ParseRaw(raw []byte) error
	Write(w io.Writer) error
}

// ContentLength is the parsed Content-Length value.
type ContentLength struct {
	Value int
}

func (h *ContentLength) Name() string { return "Content-Length" }

func (h *ContentLength) ParseRaw(raw []byte) error {
	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil || n < 0 {
		return fmt.Errorf("headers: invalid Content-Length value %q", raw)
	}
	h.Value = n
	return nil
}

func (h *ContentLength) Write(w io.Writer) error {
	_, err := io.WriteString(w, strconv.Itoa(h.Value))
	return err
}

// ContentType is the parsed Content-Type value.
type ContentType struct {
	MIME mime.MediaType
}

func (h *ContentType) Name() string { return "Content-Type" }

func (h *ContentType) ParseRaw(raw []byte) error {
	h.MIME = mime.MediaType(bytes.TrimSpace(raw))
	return nil
}

func (h *ContentType) Write(w io.Writer) error {
	_, err := io.WriteString(w, h.MIME.String())
	return err
}

// SetMime overwrites the content type's media type value.
func (h *ContentType) SetMime(m mime.MediaType) {
	h.MIME = m
}

// Host is the parsed Host header value.
type Host struct {
	Value string
}

func (h *Host) Name() string { return "Host" }

func (h *Host) ParseRaw(raw []byte) error {
	h.Value = string(bytes.TrimSpace(raw))
	return nil
}

func (h *Host) Write(w io.Writer) error {
	_, err := io.WriteString(w, h.Value)
	return err
}

var registry = map[string]func() Header{
	"content-length": func() Header { return &ContentLength{} },
	"content-type":   func() Header { return &ContentType{} },
	"host":           func() Header { return &Host{} },
}

// IsRegistered reports whether name (matched case-insensitively) has a
// known typed header implementation.
func IsRegistered(name []byte) bool {
	_, ok := registry[lower(name)]
	return ok
}

// MakeHeader constructs a fresh typed Header instance for name. Callers
// must check IsRegistered first; MakeHeader panics on an unregistered
// name, matching the contract that it's only ever invoked after a
// successful IsRegistered check (spec.md §6).
func MakeHeader(name []byte) Header {
	ctor, ok := registry[lower(name)]
	if !ok {
		panic(fmt.Sprintf("headers: %q is not registered", name))
	}
	return ctor()
}

func lower(name []byte) string {
	buf := make([]byte, len(name))
	for i, c := range name {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	return string(buf)
}
