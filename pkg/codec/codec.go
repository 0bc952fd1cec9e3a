package codec

import (
	"errors"

	"github.com/mbxust0901/simple-ipc-lib/pkg/wire"
)

// Session and framing errors shared by codec implementations.
var (
	// ErrSessionState indicates an encoder call outside the required
	// Open → arguments → Close sequence.
	ErrSessionState = errors.New("codec: invalid session state")

	// ErrBadTag indicates an argument callback invoked with a tag it
	// does not serve.
	ErrBadTag = errors.New("codec: tag not valid for this callback")

	// ErrArgCountMismatch indicates Close was called with a different
	// number of appended arguments than Open declared.
	ErrArgCountMismatch = errors.New("codec: argument count mismatch")

	// ErrMessageTooLarge indicates the encoded frame exceeds the
	// codec's maximum message size.
	ErrMessageTooLarge = errors.New("codec: message too large")
)

// Encoder encodes one message per session. The channel drives it in a
// fixed sequence: Open, exactly one argument call per value in order,
// SetMsgID, Close, Buffer.
type Encoder interface {
	// Open begins a session sized for nargs arguments.
	Open(nargs int) error

	// Word appends a fixed-size scalar or null-string marker.
	Word(bits uint64, tag wire.Tag) error

	// String8 appends a narrow string or an opaque byte array.
	String8(s string, tag wire.Tag) error

	// String16 appends a wide string.
	String16(s []uint16, tag wire.Tag) error

	// UnixFd appends a POSIX file descriptor.
	UnixFd(fd int, tag wire.Tag) error

	// WinHandle appends a native handle.
	WinHandle(h uintptr, tag wire.Tag) error

	// SetMsgID attaches the message id to the session.
	SetMsgID(id uint32)

	// Close finalizes the encoding. It fails if the session is
	// inconsistent, e.g. fewer or more arguments than Open declared.
	Close() error

	// Buffer returns the finalized buffer. It fails if Close was not
	// called or did not succeed. The buffer is owned by the session and
	// is only valid until the next encoding operation.
	Buffer() ([]byte, error)
}

// Handler receives decode callbacks in wire order. Every callback
// returns false to abort the decode; the decoder must then stop and
// report failure through Success.
type Handler interface {
	// OnMessageStart is called exactly once, before any value callback,
	// with the message id and the declared argument count.
	OnMessageStart(msgID uint32, nargs int) bool

	// OnWord delivers one fixed-size argument.
	OnWord(bits uint64, tag wire.Tag) bool

	// OnString8 delivers one narrow-string or byte-array argument.
	OnString8(s string, tag wire.Tag) bool

	// OnString16 delivers one wide-string argument.
	OnString16(s []uint16, tag wire.Tag) bool
}

// Decoder consumes raw bytes incrementally and replays the message
// through its Handler.
type Decoder interface {
	// OnData feeds one chunk. The return value is a want-more signal:
	// true to keep feeding, false to stop — either because decoding
	// finished or because it failed; only Success tells which. An empty
	// chunk means end of stream.
	OnData(p []byte) bool

	// Success reports whether a complete, well-formed message was
	// decoded from all data fed so far.
	Success() bool
}

// Codec creates encoder sessions and decoders for one wire format. Both
// ends of a channel must agree on the codec.
type Codec interface {
	NewEncoder() Encoder
	NewDecoder(h Handler) Decoder
}
