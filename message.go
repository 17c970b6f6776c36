package wemux

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Message is either an [Event] or a [Command]. Its concrete runtime type is
// its routing key; the value itself only carries data.
type Message interface{}

// Event is a message that something has happened. Any number of listeners
// may observe it, and it produces no result.
type Event interface{}

// Command is a message that requests work. Exactly one handler executes it
// and produces a result.
type Command interface{}

// Metadata carries an identity and creation time for messages that want
// one. The bus itself never requires it.
type Metadata struct {
	ID        string
	Timestamp time.Time
}

// NewMetadata returns a Metadata with a fresh UUID and the current time.
func NewMetadata() Metadata {
	return Metadata{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// TypeOf returns the routing key for the message type T. It is the key a
// value of type T routes with at dispatch time.
func TypeOf[T Message]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
