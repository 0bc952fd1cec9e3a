// Package log provides structured event logging for the IPC channel.
//
// The channel and transports emit Events — raw frames at the transport
// layer, decoded messages and errors at the channel layer — to a Logger
// the application supplies. Applications choose the sink:
//
//   - SlogAdapter forwards events to a log/slog logger for console output
//   - FileLogger captures events to disk in CBOR for later analysis
//   - MultiLogger fans out to several sinks at once
//   - NoopLogger (or a nil Logger) disables logging entirely
//
// Events are CBOR-serializable with integer keys, so a capture file is
// compact and replayable via ReadEvents.
package log
