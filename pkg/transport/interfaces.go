package transport

import "github.com/mbxust0901/simple-ipc-lib/pkg/channel"

// Compile-time interface satisfaction checks.
var (
	_ channel.Transport = (*Stream)(nil)
	_ channel.Transport = (*Loopback)(nil)
)
