package png

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/ketan-sonar/pngme/internal/crc"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// chunkOverhead is the size of a chunk with no data.
	chunkOverhead = lengthSize + typeSize + crcSize
)

// Chunk is one length-type-data-crc unit of a PNG stream. A Chunk always
// carries the correct CRC for its type and data.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk of type t holding a copy of data.
func NewChunk(t ChunkType, data []byte) Chunk {
	owned := append([]byte(nil), data...)
	return Chunk{
		chunkType: t,
		data:      owned,
		crc:       checksum(t, owned),
	}
}

func checksum(t ChunkType, data []byte) uint32 {
	tb := t.Bytes()
	return crc.ChecksumParts(tb[:], data)
}

// ParseChunk decodes the chunk at the start of b. The declared length
// decides where the data ends; bytes after the chunk's CRC are ignored.
func ParseChunk(b []byte) (Chunk, error) {
	c, _, err := readChunk(b)
	return c, err
}

// readChunk decodes the chunk at the start of b and reports how many bytes
// it occupied.
func readChunk(b []byte) (Chunk, int, error) {
	if len(b) < chunkOverhead {
		return Chunk{}, 0, fmt.Errorf("%w: chunk needs at least %d bytes, have %d",
			ErrTruncatedInput, chunkOverhead, len(b))
	}

	length := binary.BigEndian.Uint32(b[:lengthSize])
	// compare in uint64 so huge lengths cannot wrap on 32-bit ints
	if uint64(len(b)) < chunkOverhead+uint64(length) {
		return Chunk{}, 0, fmt.Errorf("%w: chunk declares %d data bytes, have %d",
			ErrTruncatedInput, length, len(b)-chunkOverhead)
	}
	total := chunkOverhead + int(length)

	var tb [4]byte
	copy(tb[:], b[lengthSize:lengthSize+typeSize])
	t, err := ChunkTypeFromBytes(tb)
	if err != nil {
		return Chunk{}, 0, err
	}

	dataStart := lengthSize + typeSize
	dataEnd := dataStart + int(length)
	data := append([]byte(nil), b[dataStart:dataEnd]...)

	stored := binary.BigEndian.Uint32(b[dataEnd:total])
	if computed := checksum(t, data); computed != stored {
		return Chunk{}, 0, fmt.Errorf("%w: %s chunk stores %#08x, computed %#08x",
			ErrChecksumMismatch, t, stored, computed)
	}

	return Chunk{chunkType: t, data: data, crc: stored}, total, nil
}

// Length returns the number of data bytes.
func (c Chunk) Length() uint32 { return uint32(len(c.data)) }

func (c Chunk) ChunkType() ChunkType { return c.chunkType }

// Data returns a copy of the chunk payload.
func (c Chunk) Data() []byte { return append([]byte(nil), c.data...) }

func (c Chunk) CRC() uint32 { return c.crc }

// DataAsString returns the payload as text.
func (c Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s chunk", ErrInvalidText, c.chunkType)
	}
	return string(c.data), nil
}

// Bytes returns the wire encoding of c: length, type, data and CRC, with the
// integers big-endian.
func (c Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, chunkOverhead+len(c.data)))
}

func (c Chunk) appendTo(buf []byte) []byte {
	tb := c.chunkType.Bytes()
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	buf = append(buf, tb[:]...)
	buf = append(buf, c.data...)
	return binary.BigEndian.AppendUint32(buf, c.crc)
}

func (c Chunk) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.chunkType)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.crc)
	sb.WriteString("}")
	return sb.String()
}
