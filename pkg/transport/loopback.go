package transport

import (
	"errors"
	"io"
	"sync"
)

// ErrLoopbackClosed indicates a send on a closed loopback transport.
var ErrLoopbackClosed = errors.New("loopback transport closed")

// Loopback is an in-memory transport. Send enqueues a copy of the
// buffer on the peer end; Receive blocks until a chunk is queued or the
// transport is closed. A self-connected loopback (NewLoopback) delivers
// its own sends back to itself, which is enough to exercise a full
// send/receive round trip on one channel.
type Loopback struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  [][]byte
	closed bool
	peer   *Loopback
}

// NewLoopback creates a self-connected loopback: bytes sent are
// received on the same end.
func NewLoopback() *Loopback {
	l := &Loopback{}
	l.cond = sync.NewCond(&l.mu)
	l.peer = l
	return l
}

// Pair creates two cross-connected loopback ends: bytes sent on one are
// received on the other.
func Pair() (*Loopback, *Loopback) {
	a := &Loopback{}
	a.cond = sync.NewCond(&a.mu)
	b := &Loopback{}
	b.cond = sync.NewCond(&b.mu)
	a.peer = b
	b.peer = a
	return a, b
}

// Send enqueues a copy of p for the peer end.
func (l *Loopback) Send(p []byte) (int, error) {
	peer := l.peer
	peer.mu.Lock()
	defer peer.mu.Unlock()

	if peer.closed {
		return 0, ErrLoopbackClosed
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	peer.queue = append(peer.queue, chunk)
	peer.cond.Signal()
	return len(p), nil
}

// Receive blocks until a chunk is available or the transport is closed.
// A closed, drained transport returns io.EOF.
func (l *Loopback) Receive() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.queue) == 0 && !l.closed {
		l.cond.Wait()
	}
	if len(l.queue) == 0 {
		return nil, io.EOF
	}
	chunk := l.queue[0]
	l.queue = l.queue[1:]
	return chunk, nil
}

// Close marks this end closed and wakes any blocked Receive. Pending
// chunks remain receivable; once drained, Receive returns io.EOF.
func (l *Loopback) Close() error {
	l.mu.Lock()
	l.closed = true
	l.cond.Broadcast()
	l.mu.Unlock()
	return nil
}
