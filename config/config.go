// Package config holds the server's tunables as a functional-options
// struct, grounded on http.cc's Endpoint::Options builder pattern
// (`.threads(n)`, `.backlog(n)`) and generalized per spec.md §5, §6.
package config

import "github.com/bthrall/pistache/streambuf"

// Options configures a reactor.Reactor and the Listener it drives.
type Options struct {
	// Threads is the number of worker goroutines, each owning an
	// independent Poller and connection table. Default 1.
	Threads int
	// Addr is the IPv4 address to bind, as 4 octets.
	Addr [4]byte
	// Port is the TCP port to bind.
	Port int
	// Backlog is the listen(2) backlog size.
	Backlog int
	// MaxBuffer bounds a single request's buffered size; also sizes the
	// response serialization slab at 2×MaxBuffer.
	MaxBuffer int
	// MaxEvents bounds how many readiness events a single Poll call
	// drains at once.
	MaxEvents int
}

// Option mutates an Options in place, in the style of http.cc's chained
// Endpoint::Options setters.
type Option func(*Options)

// Default returns the baseline configuration: a single worker thread,
// the default request-size ceiling, and a conservative backlog.
func Default() Options {
	return Options{
		Threads:   1,
		Port:      8080,
		Backlog:   128,
		MaxBuffer: streambuf.DefaultMaxBuffer,
		MaxEvents: 128,
	}
}

// WithThreads sets the worker-goroutine count.
func WithThreads(n int) Option {
	return func(o *Options) { o.Threads = n }
}

// WithAddr sets the bind address.
func WithAddr(addr [4]byte) Option {
	return func(o *Options) { o.Addr = addr }
}

// WithPort sets the bind port.
func WithPort(port int) Option {
	return func(o *Options) { o.Port = port }
}

// WithBacklog sets the listen(2) backlog.
func WithBacklog(n int) Option {
	return func(o *Options) { o.Backlog = n }
}

// WithMaxBuffer sets the per-request buffer ceiling.
func WithMaxBuffer(n int) Option {
	return func(o *Options) { o.MaxBuffer = n }
}

// WithMaxEvents sets how many events a single Poll call drains.
func WithMaxEvents(n int) Option {
	return func(o *Options) { o.MaxEvents = n }
}

// New builds an Options starting from Default and applying opts in
// order.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
