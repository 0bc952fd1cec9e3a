package transport

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbxust0901/simple-ipc-lib/pkg/log"
)

// pipeConn joins the two halves of an io.Pipe into a ReadWriteCloser.
type pipeConn struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p pipeConn) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p pipeConn) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p pipeConn) Close() error {
	p.r.Close()
	return p.w.Close()
}

// streamPipe returns two cross-connected stream transports.
func streamPipe() (*Stream, *Stream) {
	ar, bw := io.Pipe()
	br, aw := io.Pipe()
	a := NewStream(pipeConn{r: ar, w: aw})
	b := NewStream(pipeConn{r: br, w: bw})
	return a, b
}

// captureLogger records events for assertions.
type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(ev log.Event) {
	c.events = append(c.events, ev)
}

func TestStreamSendReceive(t *testing.T) {
	a, b := streamPipe()
	defer a.Close()
	defer b.Close()

	go func() {
		_, _ = a.Send([]byte("over the pipe"))
	}()

	chunk, err := b.Receive()
	require.NoError(t, err)
	assert.Equal(t, []byte("over the pipe"), chunk)
}

func TestStreamReceiveEOFAfterClose(t *testing.T) {
	a, b := streamPipe()
	defer b.Close()

	require.NoError(t, a.Close())
	_, err := b.Receive()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamConnID(t *testing.T) {
	a, b := streamPipe()
	defer a.Close()
	defer b.Close()

	assert.NotEmpty(t, a.ConnID())
	assert.NotEmpty(t, b.ConnID())
	assert.NotEqual(t, a.ConnID(), b.ConnID())
}

func TestStreamFrameLogging(t *testing.T) {
	a, b := streamPipe()
	defer a.Close()
	defer b.Close()

	sent := &captureLogger{}
	a.SetLogger(sent)
	received := &captureLogger{}
	b.SetLogger(received)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = a.Send([]byte{1, 2, 3})
	}()
	_, err := b.Receive()
	require.NoError(t, err)
	<-done

	require.Len(t, sent.events, 1)
	out := sent.events[0]
	assert.Equal(t, log.DirectionOut, out.Direction)
	assert.Equal(t, log.LayerTransport, out.Layer)
	require.NotNil(t, out.Frame)
	assert.Equal(t, 3, out.Frame.Size)
	assert.Equal(t, a.ConnID(), out.ConnectionID)

	require.Len(t, received.events, 1)
	in := received.events[0]
	assert.Equal(t, log.DirectionIn, in.Direction)
	require.NotNil(t, in.Frame)
	assert.Equal(t, []byte{1, 2, 3}, in.Frame.Data)
}

func TestStreamFrameLogTruncation(t *testing.T) {
	a, b := streamPipe()
	defer a.Close()
	defer b.Close()

	events := &captureLogger{}
	a.SetLogger(events)

	big := make([]byte, MaxLogFrameDataSize+100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = a.Send(big)
	}()
	// Drain so the pipe write completes.
	total := 0
	for total < len(big) {
		chunk, err := b.Receive()
		require.NoError(t, err)
		total += len(chunk)
	}
	<-done

	require.Len(t, events.events, 1)
	frame := events.events[0].Frame
	require.NotNil(t, frame)
	assert.True(t, frame.Truncated)
	assert.Len(t, frame.Data, MaxLogFrameDataSize)
	assert.Equal(t, len(big), frame.Size)
}
