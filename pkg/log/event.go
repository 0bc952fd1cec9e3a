package log

import "time"

// Event represents one protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the channel/transport instance.
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Frame   *FrameEvent   `cbor:"6,keyasint,omitempty"` // Transport layer
	Message *MessageEvent `cbor:"7,keyasint,omitempty"` // Channel layer
	Error   *ErrorEvent   `cbor:"8,keyasint,omitempty"` // Errors at any layer
}

// FrameEvent describes raw bytes crossing the transport.
type FrameEvent struct {
	// Size is the full frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the frame content, possibly truncated for large frames.
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates Data was cut short.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent describes one encoded or decoded channel message.
type MessageEvent struct {
	// MsgID is the message id.
	MsgID uint32 `cbor:"1,keyasint"`

	// ArgCount is the number of arguments in the message.
	ArgCount int `cbor:"2,keyasint"`

	// Size is the encoded buffer size in bytes (zero when unknown).
	Size int `cbor:"3,keyasint,omitempty"`
}

// ErrorEvent describes a failure at any layer.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context names the operation that failed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the raw byte pipe.
	LayerTransport Layer = 0
	// LayerChannel is the message encode/decode/dispatch layer.
	LayerChannel Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerChannel:
		return "CHANNEL"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message or frame.
	CategoryMessage Category = 0
	// CategoryError indicates an error event.
	CategoryError Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
