// Package channel implements the IPC message channel: the coordinator
// between a byte transport, a wire codec, and per-message dispatch.
//
// A Channel does not distinguish sender from receiver and assumes the
// transport is bidirectional. Send turns a message id plus an ordered
// list of wire values into one encoded buffer and hands it to the
// transport. Receive reads chunks from the transport, feeds them to a
// fresh decoder, and routes the reconstructed message to a handler
// resolved from a caller-supplied dispatch table.
//
// # Trust boundary
//
// Receive is the only place where untrusted bytes become typed values.
// The accumulator whitelists the tags it will materialize, an
// unrecognized tag aborts the whole message, and the argument count is
// checked against a fixed capacity before any handler runs. None of
// these rejections are recoverable: a malformed message is dropped with
// a distinct error and no partial dispatch occurs.
//
// # Concurrency
//
// A Channel is single-threaded and synchronous. Send and Receive block
// on the transport; the channel itself has no timeouts, retries, or
// background goroutines. Callers needing concurrent send and receive
// must serialize externally, e.g. one goroutine owning each direction.
package channel
