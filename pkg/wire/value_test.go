package wire

import (
	"testing"
)

func TestConstructorTags(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		tag  Tag
	}{
		{"int32", Int32(-42), TagInt32},
		{"uint32", Uint32(42), TagUint32},
		{"char8", Char8('x'), TagChar8},
		{"char16", Char16(0x2603), TagChar16},
		{"string8", String8("hello"), TagString8},
		{"null string8", NullString8(), TagNullString8},
		{"string16", String16([]uint16{'h', 'i'}), TagString16},
		{"null string16", NullString16(), TagNullString16},
		{"byte array", Bytes([]byte{0, 1, 2}), TagByteArray},
		{"unix fd", UnixFd(5), TagUnixFd},
		{"win handle", WinHandle(0xdead), TagWinHandle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Tag(); got != tt.tag {
				t.Errorf("Tag() = %s, want %s", got, tt.tag)
			}
		})
	}
}

func TestZeroValueIsNone(t *testing.T) {
	var v Value
	if v.Tag() != TagNone {
		t.Errorf("zero Value tag = %s, want NONE", v.Tag())
	}
	if _, ok := v.Bits(); ok {
		t.Error("zero Value should not expose bits")
	}
}

func TestTypedAccessors(t *testing.T) {
	if got, ok := Int32(-42).Int32(); !ok || got != -42 {
		t.Errorf("Int32() = %d, %v", got, ok)
	}
	if got, ok := Uint32(0xffffffff).Uint32(); !ok || got != 0xffffffff {
		t.Errorf("Uint32() = %d, %v", got, ok)
	}
	if got, ok := Char8('z').Char8(); !ok || got != 'z' {
		t.Errorf("Char8() = %c, %v", got, ok)
	}
	if got, ok := Char16(0x2603).Char16(); !ok || got != 0x2603 {
		t.Errorf("Char16() = %d, %v", got, ok)
	}
	if got, ok := String8("hello").String8(); !ok || got != "hello" {
		t.Errorf("String8() = %q, %v", got, ok)
	}
	if got, ok := Bytes([]byte{1, 0, 2}).Bytes(); !ok || len(got) != 3 {
		t.Errorf("Bytes() = %v, %v", got, ok)
	}
	if got, ok := UnixFd(7).UnixFd(); !ok || got != 7 {
		t.Errorf("UnixFd() = %d, %v", got, ok)
	}
	if got, ok := WinHandle(0xbeef).WinHandle(); !ok || got != 0xbeef {
		t.Errorf("WinHandle() = %x, %v", got, ok)
	}
}

func TestMismatchedAccessorFails(t *testing.T) {
	v := Int32(1)
	if _, ok := v.String8(); ok {
		t.Error("String8 accessor succeeded on INT32 value")
	}
	if _, ok := v.Bytes(); ok {
		t.Error("Bytes accessor succeeded on INT32 value")
	}
	if _, ok := v.UnixFd(); ok {
		t.Error("UnixFd accessor succeeded on INT32 value")
	}
	if _, ok := String8("x").Int32(); ok {
		t.Error("Int32 accessor succeeded on STRING8 value")
	}
	// Null string marker is not a string payload.
	if _, ok := NullString8().String8(); ok {
		t.Error("String8 accessor succeeded on NULLSTRING8 value")
	}
}

func TestNullStringDistinctFromEmpty(t *testing.T) {
	null8 := NullString8()
	empty8 := String8("")
	if null8.Equal(empty8) {
		t.Error("null narrow string compares equal to empty string")
	}
	null16 := NullString16()
	empty16 := String16(nil)
	if null16.Equal(empty16) {
		t.Error("null wide string compares equal to empty wide string")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same int32", Int32(5), Int32(5), true},
		{"different int32", Int32(5), Int32(6), false},
		{"int32 vs uint32 same bits", Int32(5), Uint32(5), false},
		{"same string8", String8("a"), String8("a"), true},
		{"same string16", String16([]uint16{1, 2}), String16([]uint16{1, 2}), true},
		{"different string16", String16([]uint16{1, 2}), String16([]uint16{1, 3}), false},
		{"same bytes", Bytes([]byte{0, 1}), Bytes([]byte{0, 1}), true},
		{"different bytes", Bytes([]byte{0, 1}), Bytes([]byte{0, 2}), false},
		{"null markers", NullString8(), NullString8(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWideStringRoundTrip(t *testing.T) {
	v := String16FromString("héllo ☃")
	s, ok := v.WideString()
	if !ok {
		t.Fatal("WideString accessor failed on STRING16 value")
	}
	if s != "héllo ☃" {
		t.Errorf("WideString() = %q", s)
	}
}

func TestCloneIndependence(t *testing.T) {
	raw := []byte{1, 2, 3}
	v := Bytes(raw).Clone()
	raw[0] = 99
	b, _ := v.Bytes()
	if b[0] != 1 {
		t.Error("Clone still aliases the original byte slice")
	}

	wide := []uint16{10, 20}
	w := String16(wide).Clone()
	wide[0] = 99
	u, _ := w.String16()
	if u[0] != 10 {
		t.Error("Clone still aliases the original wide slice")
	}
}

func TestTagPredicates(t *testing.T) {
	wordTags := []Tag{TagInt32, TagUint32, TagChar8, TagChar16, TagNullString8, TagNullString16}
	for _, tag := range wordTags {
		if !tag.IsWord() {
			t.Errorf("%s should be a word tag", tag)
		}
	}
	for _, tag := range []Tag{TagNone, TagString8, TagString16, TagByteArray, TagUnixFd, TagWinHandle} {
		if tag.IsWord() {
			t.Errorf("%s should not be a word tag", tag)
		}
	}
	if TagNone.IsValid() {
		t.Error("TagNone should not be valid")
	}
	if !TagWinHandle.IsValid() {
		t.Error("TagWinHandle should be valid")
	}
	if Tag(200).IsValid() {
		t.Error("tag 200 should not be valid")
	}
}
