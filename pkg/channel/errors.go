package channel

import "errors"

// Channel errors. Every failure mode is a distinct sentinel; wrapped
// errors carry the underlying cause.
var (
	// ErrEncodeOpen indicates the encoder session could not be started.
	ErrEncodeOpen = errors.New("ipc: encoder session open failed")

	// ErrArgumentRejected indicates the encoder rejected one of the
	// message arguments.
	ErrArgumentRejected = errors.New("ipc: encoder rejected argument")

	// ErrEncodeClose indicates the encoder session failed to finalize.
	ErrEncodeClose = errors.New("ipc: encoder close failed")

	// ErrNoBuffer indicates the encoder produced no buffer after a
	// successful close.
	ErrNoBuffer = errors.New("ipc: encoder produced no buffer")

	// ErrDecodeFailed indicates the decoder never reached a complete,
	// well-formed message: malformed bytes, a tag the accumulator
	// rejected, or a premature end of stream.
	ErrDecodeFailed = errors.New("ipc: message decode failed")

	// ErrTooManyArgs indicates the decoded argument count exceeds the
	// channel's capacity. This is a protocol violation; no handler runs.
	ErrTooManyArgs = errors.New("ipc: argument count exceeds capacity")

	// ErrNoHandler indicates the dispatch table has no entry for the
	// decoded message id.
	ErrNoHandler = errors.New("ipc: no handler for message")

	// ErrTransport wraps failures propagated from the transport. The
	// channel does not retry.
	ErrTransport = errors.New("ipc: transport failure")
)
