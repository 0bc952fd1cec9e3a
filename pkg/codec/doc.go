// Package codec defines the encode/decode contracts an IPC channel
// requires from its wire-format collaborators, and provides a concrete
// CBOR implementation of both.
//
// # Contracts
//
// An Encoder turns one message (id plus tagged values) into one opaque
// byte buffer through a strict session sequence: Open, one callback per
// argument, SetMsgID, Close, Buffer.
//
// A Decoder consumes raw bytes incrementally through OnData and replays
// the reconstructed message through Handler callbacks in wire order.
// OnData only signals whether the decoder wants more bytes; Success is
// the sole oracle for whether a complete, well-formed message was
// decoded. A Handler callback returning false aborts the decode — an
// unrecognized tag is a security-relevant rejection, never something to
// skip over.
//
// # Wire format
//
// The built-in codec frames each message as a 4-byte big-endian length
// prefix followed by a deterministic CBOR map with integer keys:
//
//	{
//	  1: messageId,   // uint32
//	  2: declared,    // declared argument count from Open
//	  3: [            // arguments in wire order
//	    {1: tag, 2: word | 3: string8 | 4: string16 | 5: bytes},
//	    ...
//	  ]
//	}
//
// The byte layout is a property of this codec only; channel and
// transport treat the buffer as opaque.
package codec
