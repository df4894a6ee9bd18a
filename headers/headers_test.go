package headers

import (
	"bytes"
	"testing"
)

func TestAddParsesRegisteredHeader(t *testing.T) {
	c := NewCollection()
	if err := c.Add([]byte("Content-Length"), []byte("42")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	cl, ok := TryGet[*ContentLength](c)
	if !ok {
		t.Fatal("expected a *ContentLength entry")
	}
	if cl.Value != 42 {
		t.Fatalf("Value: got %d, want 42", cl.Value)
	}
}

func TestAddKeepsUnregisteredHeaderRaw(t *testing.T) {
	c := NewCollection()
	if err := c.Add([]byte("X-Request-Id"), []byte("abc123")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	v, ok := c.Get("x-request-id")
	if !ok {
		t.Fatal("expected to find X-Request-Id")
	}
	if string(v) != "abc123" {
		t.Fatalf("Get: got %q, want %q", v, "abc123")
	}
}

func TestContentLengthRejectsNonNumeric(t *testing.T) {
	c := NewCollection()
	if err := c.Add([]byte("Content-Length"), []byte("not-a-number")); err == nil {
		t.Fatal("expected an error for a non-numeric Content-Length")
	}
}

func TestSetReplacesExistingTypedHeader(t *testing.T) {
	c := NewCollection()
	c.Set(&ContentLength{Value: 1})
	c.Set(&ContentLength{Value: 2})

	if c.Len() != 1 {
		t.Fatalf("Len: got %d, want 1 after replacing same-type header", c.Len())
	}
	cl, _ := TryGet[*ContentLength](c)
	if cl.Value != 2 {
		t.Fatalf("Value: got %d, want 2", cl.Value)
	}
}

func TestWriteToPreservesInsertionOrder(t *testing.T) {
	c := NewCollection()
	c.AddRaw([]byte("Host"), []byte("example.com"))
	c.AddRaw([]byte("X-Foo"), []byte("bar"))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	want := "Host: example.com\r\nX-Foo: bar\r\n"
	if buf.String() != want {
		t.Fatalf("WriteTo: got %q, want %q", buf.String(), want)
	}
}

func TestResetClearsEntries(t *testing.T) {
	c := NewCollection()
	c.AddRaw([]byte("X-Foo"), []byte("bar"))
	c.Reset()

	if c.Len() != 0 {
		t.Fatalf("Len after Reset: got %d, want 0", c.Len())
	}
}
