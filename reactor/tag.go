package reactor

import "github.com/bthrall/pistache/poller"

// tagFor packs an fd and a per-slot generation counter into a single
// poller.Tag, so an event for a since-closed-and-reused fd can be told
// apart from a live one: the generation in the event won't match the
// generation currently registered for that fd (poller.go's doc comment
// on Tag).
func tagFor(fd poller.Fd, gen uint32) poller.Tag {
	return poller.Tag(uint64(uint32(fd))<<32 | uint64(gen))
}

func fdFromTag(tag poller.Tag) poller.Fd {
	return poller.Fd(uint32(tag >> 32))
}

func genFromTag(tag poller.Tag) uint32 {
	return uint32(tag)
}
