// Package transport provides concrete byte transports for IPC channels.
//
// A channel only requires an opaque bidirectional byte pipe: Send
// transmits one encoded buffer, Receive blocks for the next chunk of
// available bytes. Two implementations cover the common cases:
//
//   - Stream adapts any io.ReadWriteCloser — an os.Pipe pair inherited
//     across fork/exec, a unix-domain socket, a net.Conn — and hands the
//     channel whatever chunk sizes the underlying reads produce.
//   - Loopback is an in-memory transport for tests and same-process
//     use; Pair returns two cross-connected ends.
//
// Both can emit frame events to a log.Logger for wire-level debugging.
package transport
