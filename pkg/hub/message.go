// Package hub provides a thread-safe websocket broadcast hub
// using the idiomatic Go channel-based fan-out pattern.
package hub

// Message represents a JSON-encoded message to be broadcast to clients.
type Message struct {
	Data []byte
}

// NewMessage creates a message from pre-encoded bytes.
func NewMessage(data []byte) Message {
	return Message{Data: data}
}
