package channel

import "github.com/mbxust0901/simple-ipc-lib/pkg/wire"

// MsgHandler processes one decoded message. The args slice and its
// payloads are only valid for the duration of the call; handlers copy
// out anything they keep.
type MsgHandler interface {
	HandleMessage(msgID uint32, ch *Channel, args []wire.Value) error
}

// MsgHandlerFunc adapts a function to the MsgHandler interface.
type MsgHandlerFunc func(msgID uint32, ch *Channel, args []wire.Value) error

// HandleMessage calls f.
func (f MsgHandlerFunc) HandleMessage(msgID uint32, ch *Channel, args []wire.Value) error {
	return f(msgID, ch, args)
}

// Dispatcher resolves a decoded message id to a handler. The keying
// scheme is the caller's business; the channel only requires that a nil
// result means "no handler".
type Dispatcher interface {
	Resolve(msgID uint32) MsgHandler
}

// DispatchMap is a Dispatcher keyed directly by message id.
type DispatchMap map[uint32]MsgHandler

// Resolve returns the handler registered for id, or nil.
func (m DispatchMap) Resolve(id uint32) MsgHandler {
	return m[id]
}

// Compile-time interface satisfaction check.
var _ Dispatcher = DispatchMap(nil)
