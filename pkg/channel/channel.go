package channel

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mbxust0901/simple-ipc-lib/pkg/codec"
	"github.com/mbxust0901/simple-ipc-lib/pkg/log"
	"github.com/mbxust0901/simple-ipc-lib/pkg/wire"
)

// DefaultMaxArgs is the default upper bound on arguments per message.
// The bound is a deliberate protocol limit: a decoded message exceeding
// it is rejected before dispatch, never truncated.
const DefaultMaxArgs = 8

// Transport is the byte pipe a channel owns. Framing below the byte
// level is the transport's responsibility; the channel treats buffers
// as opaque.
type Transport interface {
	// Send transmits one encoded buffer, returning bytes transmitted.
	Send(p []byte) (int, error)

	// Receive blocks until the next chunk of available bytes. A nil or
	// empty chunk, or io.EOF, signals the stream is closed.
	Receive() ([]byte, error)
}

// Config configures a Channel. The zero value is usable: default
// capacity, no logging.
type Config struct {
	// MaxArgs is the argument-count capacity (default DefaultMaxArgs).
	MaxArgs int

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger

	// ConnID identifies this channel in log events.
	ConnID string
}

// Channel coordinates one transport, one codec, and per-message
// dispatch. It exclusively owns its transport for its lifetime and is
// not safe for concurrent Send or Receive calls on the same instance.
type Channel struct {
	transport Transport
	codec     codec.Codec
	cfg       Config
}

// New creates a channel over the given transport and codec.
func New(t Transport, c codec.Codec, cfg Config) *Channel {
	if cfg.MaxArgs <= 0 {
		cfg.MaxArgs = DefaultMaxArgs
	}
	return &Channel{transport: t, codec: c, cfg: cfg}
}

// MaxArgs returns the channel's argument-count capacity.
func (ch *Channel) MaxArgs() int {
	return ch.cfg.MaxArgs
}

// Send encodes one message and hands it to the transport. It returns
// the transport's byte count uninterpreted. The args slice must remain
// valid for the duration of the call; the encoded buffer is owned by
// the encoder session and is not retained.
func (ch *Channel) Send(msgID uint32, args []wire.Value) (int, error) {
	enc := ch.codec.NewEncoder()
	if err := enc.Open(len(args)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodeOpen, err)
	}
	for i, v := range args {
		if err := ch.encodeValue(enc, v); err != nil {
			err = fmt.Errorf("%w: arg %d (%s): %v", ErrArgumentRejected, i, v.Tag(), err)
			ch.logError("send", err)
			return 0, err
		}
	}
	enc.SetMsgID(msgID)
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEncodeClose, err)
	}
	buf, err := enc.Buffer()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoBuffer, err)
	}

	n, err := ch.transport.Send(buf)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrTransport, err)
		ch.logError("send", err)
		return n, err
	}
	ch.logMessage(log.DirectionOut, msgID, len(args), len(buf))
	return n, nil
}

// encodeValue routes one value to the encoder callback matching its
// tag. TagNone is always a hard failure.
func (ch *Channel) encodeValue(enc codec.Encoder, v wire.Value) error {
	switch v.Tag() {
	case wire.TagInt32, wire.TagUint32, wire.TagChar8, wire.TagChar16,
		wire.TagNullString8, wire.TagNullString16:
		bits, _ := v.Bits()
		return enc.Word(bits, v.Tag())

	case wire.TagString8:
		s, _ := v.String8()
		return enc.String8(s, v.Tag())

	case wire.TagByteArray:
		b, _ := v.Bytes()
		return enc.String8(string(b), v.Tag())

	case wire.TagString16:
		s, _ := v.String16()
		return enc.String16(s, v.Tag())

	case wire.TagUnixFd:
		fd, _ := v.UnixFd()
		return enc.UnixFd(fd, v.Tag())

	case wire.TagWinHandle:
		h, _ := v.WinHandle()
		return enc.WinHandle(h, v.Tag())

	default:
		return fmt.Errorf("tag %s cannot be encoded", v.Tag())
	}
}

// Receive reads one message from the transport and dispatches it.
//
// The loop always asks the transport for a chunk before each decoder
// feed. A closed or drained transport (io.EOF or an empty chunk) is fed
// to the decoder as one final empty chunk so it can finalize, and then
// the loop exits unconditionally — a closed transport never spins.
//
// Receive returns exactly what the resolved handler returns; every
// failure before dispatch is one of the package sentinels.
func (ch *Channel) Receive(d Dispatcher) error {
	acc := NewAccumulator(ch.cfg.MaxArgs)
	dec := ch.codec.NewDecoder(acc)

	for {
		chunk, err := ch.transport.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				dec.OnData(nil)
				break
			}
			err = fmt.Errorf("%w: %v", ErrTransport, err)
			ch.logError("receive", err)
			return err
		}
		more := dec.OnData(chunk)
		if !more || len(chunk) == 0 {
			break
		}
	}

	if !dec.Success() {
		ch.logError("receive", ErrDecodeFailed)
		return ErrDecodeFailed
	}
	if acc.Len() > ch.cfg.MaxArgs {
		err := fmt.Errorf("%w: %d > %d", ErrTooManyArgs, acc.Len(), ch.cfg.MaxArgs)
		ch.logError("receive", err)
		return err
	}

	msgID := acc.MsgID()
	ch.logMessage(log.DirectionIn, msgID, acc.Len(), 0)

	h := d.Resolve(msgID)
	if h == nil {
		err := fmt.Errorf("%w: id %d", ErrNoHandler, msgID)
		ch.logError("receive", err)
		return err
	}
	return h.HandleMessage(msgID, ch, acc.Values())
}

// logMessage emits a message event if a logger is configured.
func (ch *Channel) logMessage(dir log.Direction, msgID uint32, nargs, size int) {
	if ch.cfg.Logger == nil {
		return
	}
	ch.cfg.Logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: ch.cfg.ConnID,
		Direction:    dir,
		Layer:        log.LayerChannel,
		Category:     log.CategoryMessage,
		Message: &log.MessageEvent{
			MsgID:    msgID,
			ArgCount: nargs,
			Size:     size,
		},
	})
}

// logError emits an error event if a logger is configured.
func (ch *Channel) logError(context string, err error) {
	if ch.cfg.Logger == nil {
		return
	}
	ch.cfg.Logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: ch.cfg.ConnID,
		Layer:        log.LayerChannel,
		Category:     log.CategoryError,
		Error: &log.ErrorEvent{
			Message: err.Error(),
			Context: context,
		},
	})
}
