package wire

import (
	"bytes"
	"unicode/utf16"
)

// Value is one immutable, tagged argument value. The zero Value has
// TagNone and no payload. Construct Values only through the typed
// constructors; accessors return false when called against a mismatched
// tag.
type Value struct {
	tag  Tag
	word uint64   // int32/uint32/char8/char16 bit pattern, fd, handle
	str  string   // string8 payload
	wide []uint16 // string16 payload
	raw  []byte   // byte array payload
}

// Int32 constructs a signed 32-bit integer value.
func Int32(v int32) Value {
	return Value{tag: TagInt32, word: uint64(uint32(v))}
}

// Uint32 constructs an unsigned 32-bit integer value.
func Uint32(v uint32) Value {
	return Value{tag: TagUint32, word: uint64(v)}
}

// Char8 constructs an 8-bit character value.
func Char8(c byte) Value {
	return Value{tag: TagChar8, word: uint64(c)}
}

// Char16 constructs a 16-bit character value.
func Char16(c uint16) Value {
	return Value{tag: TagChar16, word: uint64(c)}
}

// String8 constructs a narrow string value.
func String8(s string) Value {
	return Value{tag: TagString8, str: s}
}

// NullString8 constructs the explicit null narrow string marker.
func NullString8() Value {
	return Value{tag: TagNullString8}
}

// String16 constructs a wide string value from UTF-16 code units.
func String16(s []uint16) Value {
	return Value{tag: TagString16, wide: s}
}

// String16FromString constructs a wide string value from a Go string.
func String16FromString(s string) Value {
	return Value{tag: TagString16, wide: utf16.Encode([]rune(s))}
}

// NullString16 constructs the explicit null wide string marker.
func NullString16() Value {
	return Value{tag: TagNullString16}
}

// Bytes constructs an opaque byte array value. The slice may contain
// embedded zero bytes.
func Bytes(b []byte) Value {
	return Value{tag: TagByteArray, raw: b}
}

// UnixFd constructs a POSIX file descriptor value.
func UnixFd(fd int) Value {
	return Value{tag: TagUnixFd, word: uint64(uint32(fd))}
}

// WinHandle constructs a native handle value.
func WinHandle(h uintptr) Value {
	return Value{tag: TagWinHandle, word: uint64(h)}
}

// Tag returns the value's type tag without touching the payload.
func (v Value) Tag() Tag {
	return v.tag
}

// Bits returns the fixed-size bit representation for word-family tags
// (int32, uint32, char8, char16, the null-string markers, fd, handle).
// The second result is false for variable-length tags.
func (v Value) Bits() (uint64, bool) {
	switch v.tag {
	case TagInt32, TagUint32, TagChar8, TagChar16,
		TagNullString8, TagNullString16, TagUnixFd, TagWinHandle:
		return v.word, true
	default:
		return 0, false
	}
}

// Int32 returns the payload of a TagInt32 value.
func (v Value) Int32() (int32, bool) {
	if v.tag != TagInt32 {
		return 0, false
	}
	return int32(uint32(v.word)), true
}

// Uint32 returns the payload of a TagUint32 value.
func (v Value) Uint32() (uint32, bool) {
	if v.tag != TagUint32 {
		return 0, false
	}
	return uint32(v.word), true
}

// Char8 returns the payload of a TagChar8 value.
func (v Value) Char8() (byte, bool) {
	if v.tag != TagChar8 {
		return 0, false
	}
	return byte(v.word), true
}

// Char16 returns the payload of a TagChar16 value.
func (v Value) Char16() (uint16, bool) {
	if v.tag != TagChar16 {
		return 0, false
	}
	return uint16(v.word), true
}

// String8 returns the payload of a TagString8 value. A TagNullString8
// value does not satisfy this accessor; use Tag to distinguish null from
// empty.
func (v Value) String8() (string, bool) {
	if v.tag != TagString8 {
		return "", false
	}
	return v.str, true
}

// String16 returns the payload of a TagString16 value as UTF-16 code
// units.
func (v Value) String16() ([]uint16, bool) {
	if v.tag != TagString16 {
		return nil, false
	}
	return v.wide, true
}

// WideString returns a TagString16 payload decoded to a Go string.
func (v Value) WideString() (string, bool) {
	if v.tag != TagString16 {
		return "", false
	}
	return string(utf16.Decode(v.wide)), true
}

// Bytes returns the payload of a TagByteArray value.
func (v Value) Bytes() ([]byte, bool) {
	if v.tag != TagByteArray {
		return nil, false
	}
	return v.raw, true
}

// UnixFd returns the payload of a TagUnixFd value.
func (v Value) UnixFd() (int, bool) {
	if v.tag != TagUnixFd {
		return -1, false
	}
	return int(int32(uint32(v.word))), true
}

// WinHandle returns the payload of a TagWinHandle value.
func (v Value) WinHandle() (uintptr, bool) {
	if v.tag != TagWinHandle {
		return 0, false
	}
	return uintptr(v.word), true
}

// Equal reports whether two values have the same tag and payload.
// A null string never equals an empty string: their tags differ.
func (v Value) Equal(o Value) bool {
	if v.tag != o.tag {
		return false
	}
	switch v.tag {
	case TagString8:
		return v.str == o.str
	case TagString16:
		if len(v.wide) != len(o.wide) {
			return false
		}
		for i := range v.wide {
			if v.wide[i] != o.wide[i] {
				return false
			}
		}
		return true
	case TagByteArray:
		return bytes.Equal(v.raw, o.raw)
	default:
		return v.word == o.word
	}
}

// Clone returns a Value whose payload no longer aliases the receiver's
// backing memory. Receive-side accumulation uses this to decouple decoded
// values from decoder-internal buffers.
func (v Value) Clone() Value {
	c := v
	if len(v.wide) > 0 {
		c.wide = append([]uint16(nil), v.wide...)
	}
	if len(v.raw) > 0 {
		c.raw = append([]byte(nil), v.raw...)
	}
	return c
}
