// Package png reads and writes the chunk structure of PNG files.
//
// It parses a PNG datastream into its signature and chunks, lets callers
// look up, append and remove chunks, and serializes the result back to
// bytes. Chunk payloads are treated as opaque; no image data is decoded.
package png

import (
	"bytes"
	"fmt"
	"strings"
)

// Signature is the 8-byte sequence every PNG datastream starts with.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG is a signature followed by an ordered list of chunks. It is not safe
// for concurrent mutation.
type PNG struct {
	chunks []Chunk
}

// FromChunks returns a PNG holding chunks in the given order.
func FromChunks(chunks []Chunk) *PNG {
	return &PNG{chunks: append([]Chunk(nil), chunks...)}
}

// Parse decodes a complete PNG datastream. It fails on the first malformed
// chunk and never returns a partial result.
func Parse(b []byte) (*PNG, error) {
	if len(b) < len(Signature) {
		return nil, fmt.Errorf("%w: signature needs %d bytes, have %d",
			ErrTruncatedInput, len(Signature), len(b))
	}
	if !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, fmt.Errorf("%w: got % x", ErrBadSignature, b[:len(Signature)])
	}

	p := &PNG{}
	offset := len(Signature)
	for offset < len(b) {
		c, n, err := readChunk(b[offset:])
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(p.chunks), offset, err)
		}
		p.chunks = append(p.chunks, c)
		offset += n
	}
	return p, nil
}

// Header returns the signature written at the start of the stream.
func (p *PNG) Header() [8]byte { return Signature }

// Chunks returns the chunks in stream order. The slice is a copy.
func (p *PNG) Chunks() []Chunk {
	return append([]Chunk(nil), p.chunks...)
}

// AppendChunk adds c after the last chunk.
func (p *PNG) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type is exactly chunkType.
func (p *PNG) ChunkByType(chunkType string) (Chunk, bool) {
	i := p.index(chunkType)
	if i < 0 {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

// RemoveFirstChunk removes the first chunk whose type is exactly chunkType
// and returns it. The order of the remaining chunks is kept.
func (p *PNG) RemoveFirstChunk(chunkType string) (Chunk, error) {
	i := p.index(chunkType)
	if i < 0 {
		return Chunk{}, fmt.Errorf("%w: %q", ErrChunkNotFound, chunkType)
	}
	c := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return c, nil
}

func (p *PNG) index(chunkType string) int {
	for i, c := range p.chunks {
		if c.chunkType.String() == chunkType {
			return i
		}
	}
	return -1
}

// Bytes returns the signature followed by every chunk's encoding.
func (p *PNG) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += chunkOverhead + len(c.data)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.appendTo(buf)
	}
	return buf
}

func (p *PNG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PNG {\n")
	fmt.Fprintf(&sb, "  Signature: % x\n", Signature)
	fmt.Fprintf(&sb, "  Chunks: %d\n", len(p.chunks))
	for i, c := range p.chunks {
		fmt.Fprintf(&sb, "  [%d] %s length=%d crc=%#08x\n", i, c.chunkType, c.Length(), c.crc)
	}
	sb.WriteString("}")
	return sb.String()
}

