package wemux

import "sync"

// Collector buffers events produced while a message is being handled. The
// bus drains it in FIFO order after the triggering dispatch finishes, so a
// whole cascade resolves before the top-level call returns. Every
// top-level call owns an independent Collector; two concurrent calls on
// one bus cannot leak events into each other.
type Collector struct {
	mux     sync.Mutex
	pending []Event
}

func NewCollector() *Collector {
	return &Collector{}
}

// Push appends evt to the tail. It may be called re-entrantly from a
// listener that is itself running as part of a drain.
func (c *Collector) Push(evt Event) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.pending = append(c.pending, evt)
}

// Pop removes and returns the head of the pending events. False means the
// collector is empty.
func (c *Collector) Pop() (Event, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if len(c.pending) == 0 {
		return nil, false
	}
	evt := c.pending[0]
	c.pending = c.pending[1:]
	return evt, true
}

// Len returns the number of pending events.
func (c *Collector) Len() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.pending)
}
