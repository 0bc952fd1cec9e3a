package wire

// Tag identifies the payload type of a Value.
type Tag uint8

const (
	// TagNone marks an invalid or uninitialized value. It is never valid
	// on the wire; encoding a TagNone value is a hard failure.
	TagNone Tag = 0

	// TagInt32 is a signed 32-bit integer.
	TagInt32 Tag = 1

	// TagUint32 is an unsigned 32-bit integer.
	TagUint32 Tag = 2

	// TagChar8 is an 8-bit character.
	TagChar8 Tag = 3

	// TagChar16 is a 16-bit (wide) character.
	TagChar16 Tag = 4

	// TagString8 is a narrow character string.
	TagString8 Tag = 5

	// TagString16 is a wide character string (UTF-16 code units).
	TagString16 Tag = 6

	// TagNullString8 is an explicitly null narrow string. It is distinct
	// from an empty TagString8 value.
	TagNullString8 Tag = 7

	// TagNullString16 is an explicitly null wide string.
	TagNullString16 Tag = 8

	// TagByteArray is an opaque byte array. Unlike strings it carries an
	// explicit length and may contain embedded zero bytes.
	TagByteArray Tag = 9

	// TagUnixFd is a POSIX file descriptor.
	TagUnixFd Tag = 10

	// TagWinHandle is a native window/object handle.
	TagWinHandle Tag = 11
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNone:
		return "NONE"
	case TagInt32:
		return "INT32"
	case TagUint32:
		return "UINT32"
	case TagChar8:
		return "CHAR8"
	case TagChar16:
		return "CHAR16"
	case TagString8:
		return "STRING8"
	case TagString16:
		return "STRING16"
	case TagNullString8:
		return "NULLSTRING8"
	case TagNullString16:
		return "NULLSTRING16"
	case TagByteArray:
		return "BARRAY"
	case TagUnixFd:
		return "UNIX_FD"
	case TagWinHandle:
		return "WIN_HANDLE"
	default:
		return "UNKNOWN"
	}
}

// IsWord reports whether the tag's payload travels as a fixed-size word
// rather than a variable-length payload. Null-string markers are words:
// their payload is empty and only the tag matters.
func (t Tag) IsWord() bool {
	switch t {
	case TagInt32, TagUint32, TagChar8, TagChar16, TagNullString8, TagNullString16:
		return true
	default:
		return false
	}
}

// IsValid reports whether the tag is one of the closed set of wire tags.
// TagNone is not valid.
func (t Tag) IsValid() bool {
	return t >= TagInt32 && t <= TagWinHandle
}
