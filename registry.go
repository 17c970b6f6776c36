package wemux

import (
	"reflect"
	"sync"
)

// HandlerEntry pairs a command handler with an optional middleware chain
// that wraps only this handler, inside the dispatcher's own chain.
type HandlerEntry struct {
	Handler CommandHandler
	Chain   *Middleware
}

// Registry maps message types to the single handler of a command type and
// the ordered listeners of an event type. Registration is safe for
// concurrent use.
type Registry struct {
	mux       sync.RWMutex
	handlers  map[reflect.Type]HandlerEntry
	listeners map[reflect.Type][]EventListener
}

func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[reflect.Type]HandlerEntry),
		listeners: make(map[reflect.Type][]EventListener),
	}
}

// AddHandler stores handler for cmdType, wrapped by the given middleware.
// Registering a second handler for the same command type replaces the
// previous entry.
func (r *Registry) AddHandler(cmdType reflect.Type, handler CommandHandler, mw ...*Middleware) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.handlers[cmdType] = HandlerEntry{Handler: handler, Chain: Use(mw...)}
}

// AddListener appends listener to the list for evtType, creating the list
// on first registration.
func (r *Registry) AddListener(evtType reflect.Type, listener EventListener) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.listeners[evtType] = append(r.listeners[evtType], listener)
}

// LookupHandler returns the entry registered for cmdType, and false when
// there is none.
func (r *Registry) LookupHandler(cmdType reflect.Type) (HandlerEntry, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	entry, ok := r.handlers[cmdType]
	return entry, ok
}

// LookupListeners returns the listeners for evtType in registration order.
// An empty result is not an error. The returned slice is a copy, so a
// registration during dispatch cannot disturb a delivery in progress.
func (r *Registry) LookupListeners(evtType reflect.Type) []EventListener {
	r.mux.RLock()
	defer r.mux.RUnlock()
	listeners := r.listeners[evtType]
	out := make([]EventListener, len(listeners))
	copy(out, listeners)
	return out
}

// HasHandler reports whether a handler is registered for cmdType.
func (r *Registry) HasHandler(cmdType reflect.Type) bool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	_, ok := r.handlers[cmdType]
	return ok
}

// ListenerCount returns the number of listeners registered for evtType.
func (r *Registry) ListenerCount(evtType reflect.Type) int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.listeners[evtType])
}
