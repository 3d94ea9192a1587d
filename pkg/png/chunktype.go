package png

import "fmt"

// bit 5 of a type byte; set means lowercase.
const propertyBit = 0x20

// ChunkType is the 4-byte type code of a chunk. Every byte is an ASCII
// letter. The case of each letter carries one property bit:
//
//	byte 0: ancillary bit    (uppercase = critical)
//	byte 1: private bit      (uppercase = public)
//	byte 2: reserved bit     (must be uppercase)
//	byte 3: safe-to-copy bit (lowercase = safe to copy)
//
// A ChunkType with a lowercase reserved letter can still be built; IsValid
// reports whether it conforms.
type ChunkType struct {
	b [4]byte
}

// ChunkTypeFromBytes returns the chunk type for b. It fails if any byte is
// not an ASCII letter.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is %#02x", ErrInvalidChunkType, i, c)
		}
	}
	return ChunkType{b: b}, nil
}

// ParseChunkType returns the chunk type spelled by s, e.g. "tEXt".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q is %d bytes, want 4", ErrInvalidChunkType, s, len(s))
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// Bytes returns the raw type code.
func (t ChunkType) Bytes() [4]byte { return t.b }

func (t ChunkType) String() string { return string(t.b[:]) }

// IsCritical reports whether decoders must understand the chunk to render
// the image.
func (t ChunkType) IsCritical() bool { return t.b[0]&propertyBit == 0 }

// IsPublic reports whether the type is part of the public registry.
func (t ChunkType) IsPublic() bool { return t.b[1]&propertyBit == 0 }

// IsReservedBitValid reports whether the reserved letter is uppercase.
func (t ChunkType) IsReservedBitValid() bool { return t.b[2]&propertyBit == 0 }

// IsSafeToCopy reports whether editors that do not recognize the chunk may
// copy it unchanged.
func (t ChunkType) IsSafeToCopy() bool { return t.b[3]&propertyBit != 0 }

// IsValid reports whether t is made of letters and has a valid reserved bit.
// The zero ChunkType is not valid.
func (t ChunkType) IsValid() bool {
	for _, c := range t.b {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}
