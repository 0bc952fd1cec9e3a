package channel

import (
	"github.com/mbxust0901/simple-ipc-lib/pkg/codec"
	"github.com/mbxust0901/simple-ipc-lib/pkg/wire"
)

// Accumulator collects decoder callbacks into an ordered list of wire
// values plus a message id. It is the receive-side whitelist: callbacks
// invoked with a tag outside the closed set return false, which aborts
// the decode.
//
// The accumulator does not enforce the declared argument count against
// the channel capacity; it tolerates the decoder supplying fewer or
// more values than declared. The capacity check happens in Receive,
// after decoding, so an over-long message surfaces as ErrTooManyArgs
// rather than a generic decode failure.
type Accumulator struct {
	msgID   uint32
	started bool
	values  []wire.Value
	maxHint int
}

// NewAccumulator creates an accumulator. maxHint bounds the capacity
// reservation made from the attacker-controlled declared count; it does
// not bound accumulation itself.
func NewAccumulator(maxHint int) *Accumulator {
	return &Accumulator{maxHint: maxHint}
}

// OnMessageStart stores the message id and reserves capacity. The
// declared count is a hint from untrusted input, so the reservation is
// clamped to maxHint.
func (a *Accumulator) OnMessageStart(msgID uint32, nargs int) bool {
	a.msgID = msgID
	a.started = true
	hint := nargs
	if hint > a.maxHint {
		hint = a.maxHint
	}
	if hint > 0 {
		a.values = make([]wire.Value, 0, hint)
	}
	return true
}

// OnWord materializes one fixed-size argument. Only the word-family
// tags pass; anything else — including fd and handle tags, which have
// no legitimate word representation — is rejected.
func (a *Accumulator) OnWord(bits uint64, tag wire.Tag) bool {
	switch tag {
	case wire.TagInt32:
		a.values = append(a.values, wire.Int32(int32(uint32(bits))))
	case wire.TagUint32:
		a.values = append(a.values, wire.Uint32(uint32(bits)))
	case wire.TagChar8:
		a.values = append(a.values, wire.Char8(byte(bits)))
	case wire.TagChar16:
		a.values = append(a.values, wire.Char16(uint16(bits)))
	case wire.TagNullString8:
		a.values = append(a.values, wire.NullString8())
	case wire.TagNullString16:
		a.values = append(a.values, wire.NullString16())
	default:
		return false
	}
	return true
}

// OnString8 materializes a narrow string or byte array argument.
func (a *Accumulator) OnString8(s string, tag wire.Tag) bool {
	switch tag {
	case wire.TagString8:
		a.values = append(a.values, wire.String8(s))
	case wire.TagByteArray:
		// []byte(s) copies, so the value owns its payload.
		a.values = append(a.values, wire.Bytes([]byte(s)))
	default:
		return false
	}
	return true
}

// OnString16 materializes a wide string argument. The payload is cloned
// so its validity does not depend on decoder-internal buffers.
func (a *Accumulator) OnString16(s []uint16, tag wire.Tag) bool {
	if tag != wire.TagString16 {
		return false
	}
	a.values = append(a.values, wire.String16(s).Clone())
	return true
}

// MsgID returns the accumulated message id, valid once OnMessageStart
// has run.
func (a *Accumulator) MsgID() uint32 {
	return a.msgID
}

// Started reports whether OnMessageStart has run.
func (a *Accumulator) Started() bool {
	return a.started
}

// Len returns the number of accumulated values.
func (a *Accumulator) Len() int {
	return len(a.values)
}

// Arg returns the value at index i. Indexing past Len is a programming
// error and panics.
func (a *Accumulator) Arg(i int) wire.Value {
	return a.values[i]
}

// Values returns the accumulated values in wire order. The slice is the
// accumulator's own; callers must copy data they keep past the dispatch
// call.
func (a *Accumulator) Values() []wire.Value {
	return a.values
}

// Compile-time interface satisfaction check.
var _ codec.Handler = (*Accumulator)(nil)
