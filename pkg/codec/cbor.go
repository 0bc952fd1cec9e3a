package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/mbxust0901/simple-ipc-lib/pkg/wire"
)

// Framing constants for the CBOR codec.
const (
	// LengthPrefixSize is the size of the frame length prefix in bytes.
	LengthPrefixSize = 4

	// DefaultMaxMessageSize is the default maximum frame body size (64 KB).
	DefaultMaxMessageSize = 65536
)

// encMode is the CBOR encoder mode for IPC frames.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for IPC frames. Decoded input crosses
// a trust boundary, so the mode is strict: no indefinite lengths, no
// duplicate keys, and unknown trailing data is an error.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// frame is the CBOR shape of one encoded message.
type frame struct {
	MsgID    uint32     `cbor:"1,keyasint"`
	Declared int        `cbor:"2,keyasint"`
	Args     []frameArg `cbor:"3,keyasint,omitempty"`
}

// frameArg is one tagged argument. Exactly one payload field is set,
// selected by Tag; word-family tags may legitimately have all payload
// fields empty (zero word, null-string markers).
type frameArg struct {
	Tag  uint8    `cbor:"1,keyasint"`
	Word uint64   `cbor:"2,keyasint,omitempty"`
	Str  string   `cbor:"3,keyasint,omitempty"`
	Wide []uint16 `cbor:"4,keyasint,omitempty"`
	Raw  []byte   `cbor:"5,keyasint,omitempty"`
}

// CBORCodec is the built-in codec: length-prefixed deterministic CBOR.
// The zero value is not usable; call NewCBORCodec.
type CBORCodec struct {
	maxMessageSize uint32
}

// NewCBORCodec creates a CBOR codec with the default maximum message size.
func NewCBORCodec() *CBORCodec {
	return &CBORCodec{maxMessageSize: DefaultMaxMessageSize}
}

// NewCBORCodecWithMaxSize creates a CBOR codec with a custom maximum
// frame body size.
func NewCBORCodecWithMaxSize(maxSize uint32) *CBORCodec {
	return &CBORCodec{maxMessageSize: maxSize}
}

// NewEncoder begins a new encoder session.
func (c *CBORCodec) NewEncoder() Encoder {
	return &cborEncoder{maxMessageSize: c.maxMessageSize}
}

// NewDecoder creates a decoder that replays decoded messages through h.
func (c *CBORCodec) NewDecoder(h Handler) Decoder {
	return &cborDecoder{handler: h, maxMessageSize: c.maxMessageSize, bodyLen: -1}
}

// Compile-time interface satisfaction check.
var _ Codec = (*CBORCodec)(nil)

// cborEncoder is one encoding session.
type cborEncoder struct {
	maxMessageSize uint32
	declared       int
	msgID          uint32
	args           []frameArg
	buf            []byte
	open           bool
	closed         bool
}

func (e *cborEncoder) Open(nargs int) error {
	if e.open || e.closed {
		return fmt.Errorf("%w: Open called twice", ErrSessionState)
	}
	if nargs < 0 {
		return fmt.Errorf("%w: negative argument count", ErrSessionState)
	}
	e.declared = nargs
	e.args = make([]frameArg, 0, nargs)
	e.open = true
	return nil
}

// append adds one encoded argument, enforcing the declared capacity.
func (e *cborEncoder) append(a frameArg) error {
	if !e.open || e.closed {
		return fmt.Errorf("%w: session not open", ErrSessionState)
	}
	if len(e.args) == e.declared {
		return fmt.Errorf("%w: more than %d arguments", ErrArgCountMismatch, e.declared)
	}
	e.args = append(e.args, a)
	return nil
}

func (e *cborEncoder) Word(bits uint64, tag wire.Tag) error {
	if !tag.IsWord() {
		return fmt.Errorf("%w: %s on word callback", ErrBadTag, tag)
	}
	return e.append(frameArg{Tag: uint8(tag), Word: bits})
}

func (e *cborEncoder) String8(s string, tag wire.Tag) error {
	switch tag {
	case wire.TagString8:
		return e.append(frameArg{Tag: uint8(tag), Str: s})
	case wire.TagByteArray:
		return e.append(frameArg{Tag: uint8(tag), Raw: []byte(s)})
	default:
		return fmt.Errorf("%w: %s on string8 callback", ErrBadTag, tag)
	}
}

func (e *cborEncoder) String16(s []uint16, tag wire.Tag) error {
	if tag != wire.TagString16 {
		return fmt.Errorf("%w: %s on string16 callback", ErrBadTag, tag)
	}
	return e.append(frameArg{Tag: uint8(tag), Wide: s})
}

func (e *cborEncoder) UnixFd(fd int, tag wire.Tag) error {
	if tag != wire.TagUnixFd {
		return fmt.Errorf("%w: %s on unix-fd callback", ErrBadTag, tag)
	}
	return e.append(frameArg{Tag: uint8(tag), Word: uint64(uint32(fd))})
}

func (e *cborEncoder) WinHandle(h uintptr, tag wire.Tag) error {
	if tag != wire.TagWinHandle {
		return fmt.Errorf("%w: %s on win-handle callback", ErrBadTag, tag)
	}
	return e.append(frameArg{Tag: uint8(tag), Word: uint64(h)})
}

func (e *cborEncoder) SetMsgID(id uint32) {
	e.msgID = id
}

func (e *cborEncoder) Close() error {
	if !e.open || e.closed {
		return fmt.Errorf("%w: session not open", ErrSessionState)
	}
	if len(e.args) != e.declared {
		return fmt.Errorf("%w: declared %d, appended %d",
			ErrArgCountMismatch, e.declared, len(e.args))
	}

	body, err := encMode.Marshal(frame{
		MsgID:    e.msgID,
		Declared: e.declared,
		Args:     e.args,
	})
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if uint32(len(body)) > e.maxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(body), e.maxMessageSize)
	}

	e.buf = make([]byte, LengthPrefixSize+len(body))
	binary.BigEndian.PutUint32(e.buf[:LengthPrefixSize], uint32(len(body)))
	copy(e.buf[LengthPrefixSize:], body)
	e.closed = true
	return nil
}

func (e *cborEncoder) Buffer() ([]byte, error) {
	if !e.closed || e.buf == nil {
		return nil, fmt.Errorf("%w: no finalized buffer", ErrSessionState)
	}
	return e.buf, nil
}

// cborDecoder accumulates chunks until one full frame is buffered, then
// unmarshals it and replays the arguments through the handler. One
// decoder decodes exactly one message; bytes past the frame boundary in
// the final chunk are not consumed.
type cborDecoder struct {
	handler        Handler
	maxMessageSize uint32
	buf            []byte
	bodyLen        int // -1 until the length prefix has been read
	done           bool
	ok             bool
}

func (d *cborDecoder) OnData(p []byte) bool {
	if d.done {
		return false
	}
	if len(p) == 0 {
		// End of stream before the frame completed.
		d.done = true
		return false
	}
	d.buf = append(d.buf, p...)

	if d.bodyLen < 0 {
		if len(d.buf) < LengthPrefixSize {
			return true
		}
		length := binary.BigEndian.Uint32(d.buf[:LengthPrefixSize])
		if length == 0 || length > d.maxMessageSize {
			d.done = true
			return false
		}
		d.bodyLen = int(length)
	}

	if len(d.buf) < LengthPrefixSize+d.bodyLen {
		return true
	}

	d.decodeFrame(d.buf[LengthPrefixSize : LengthPrefixSize+d.bodyLen])
	d.done = true
	return false
}

func (d *cborDecoder) Success() bool {
	return d.done && d.ok
}

// decodeFrame unmarshals one complete frame body and replays it. Any
// unmarshal error or handler veto leaves d.ok false.
func (d *cborDecoder) decodeFrame(body []byte) {
	var f frame
	if err := decMode.Unmarshal(body, &f); err != nil {
		return
	}
	if f.Declared < 0 {
		return
	}
	if !d.handler.OnMessageStart(f.MsgID, f.Declared) {
		return
	}
	for _, a := range f.Args {
		if !d.replayArg(a) {
			return
		}
	}
	d.ok = true
}

// replayArg routes one decoded argument to the handler callback matching
// its tag. Unknown tags go through the word callback so the handler's
// whitelist is the final arbiter.
func (d *cborDecoder) replayArg(a frameArg) bool {
	tag := wire.Tag(a.Tag)
	switch tag {
	case wire.TagString8:
		return d.handler.OnString8(a.Str, tag)
	case wire.TagByteArray:
		return d.handler.OnString8(string(a.Raw), tag)
	case wire.TagString16:
		return d.handler.OnString16(a.Wide, tag)
	default:
		return d.handler.OnWord(a.Word, tag)
	}
}
