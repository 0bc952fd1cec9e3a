// Package wire defines the typed argument values carried over an IPC
// channel.
//
// The unit of communication is a message: a message id plus an ordered
// sequence of tagged values. Each value carries exactly one tag and one
// payload; the tag is fixed at construction and payloads are only
// reachable through the accessor matching the tag.
//
// # Tags
//
// The tag set is closed. Fixed-size scalars (int32, uint32, char8,
// char16) travel as a 64-bit word alongside their tag; strings and byte
// arrays travel with an explicit length; null narrow/wide strings are
// distinct tags of their own, not empty strings. File descriptors and
// native window handles are tagged so a codec can give them special
// treatment when crossing a process boundary.
//
// # Ownership
//
// Values constructed from caller data copy nothing; the caller keeps the
// backing memory alive for the duration of the Send call that uses them.
// Values reconstructed on the receive side own their payloads outright.
package wire
