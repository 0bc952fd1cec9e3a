package transport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mbxust0901/simple-ipc-lib/pkg/log"
)

const (
	// DefaultReadChunkSize is the read buffer size for one Receive call.
	DefaultReadChunkSize = 4096

	// MaxLogFrameDataSize is the maximum frame data size to include in
	// log events. Larger frames are truncated in the event, not on the
	// wire.
	MaxLogFrameDataSize = 4096
)

// Stream adapts an io.ReadWriteCloser to the channel transport
// contract. Receive returns whatever chunk size the underlying Read
// produces; framing above the byte level is the codec's business.
//
// Stream is not safe for concurrent Receive calls; one goroutine owns
// reading, per the channel's concurrency model.
type Stream struct {
	rw        io.ReadWriteCloser
	readBuf   []byte
	connID    string
	logger    log.Logger
	chunkSize int
}

// NewStream creates a stream transport over rw. A fresh connection id
// is assigned for log correlation.
func NewStream(rw io.ReadWriteCloser) *Stream {
	return &Stream{
		rw:        rw,
		readBuf:   make([]byte, DefaultReadChunkSize),
		connID:    uuid.New().String(),
		chunkSize: DefaultReadChunkSize,
	}
}

// SetLogger configures frame-event logging. Pass nil to disable.
func (s *Stream) SetLogger(logger log.Logger) {
	s.logger = logger
}

// ConnID returns the transport's connection id.
func (s *Stream) ConnID() string {
	return s.connID
}

// Send writes the whole buffer to the underlying writer.
func (s *Stream) Send(p []byte) (int, error) {
	n, err := s.rw.Write(p)
	if err != nil {
		return n, fmt.Errorf("stream write: %w", err)
	}
	if n < len(p) {
		return n, fmt.Errorf("stream write: %w", io.ErrShortWrite)
	}
	s.logFrame(p, log.DirectionOut)
	return n, nil
}

// Receive blocks until the underlying reader yields bytes. It returns
// io.EOF once the stream is closed and drained.
func (s *Stream) Receive() ([]byte, error) {
	n, err := s.rw.Read(s.readBuf)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, s.readBuf[:n])
		s.logFrame(chunk, log.DirectionIn)
		return chunk, nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("stream read: %w", err)
	}
	return nil, nil
}

// Close closes the underlying pipe.
func (s *Stream) Close() error {
	return s.rw.Close()
}

// logFrame emits a frame event if a logger is configured.
func (s *Stream) logFrame(data []byte, direction log.Direction) {
	if s.logger == nil {
		return
	}
	frameData := data
	truncated := false
	if len(data) > MaxLogFrameDataSize {
		frameData = data[:MaxLogFrameDataSize]
		truncated = true
	}
	s.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Frame: &log.FrameEvent{
			Size:      len(data),
			Data:      frameData,
			Truncated: truncated,
		},
	})
}
