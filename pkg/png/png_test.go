package png

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func testingChunks(t *testing.T) []Chunk {
	t.Helper()
	return []Chunk{
		NewChunk(mustChunkType(t, "FrSt"), []byte("I am the first chunk")),
		NewChunk(mustChunkType(t, "miDl"), []byte("I am another chunk")),
		NewChunk(mustChunkType(t, "LASt"), []byte("I am the last chunk")),
	}
}

func testingPNG(t *testing.T) *PNG {
	t.Helper()
	return FromChunks(testingChunks(t))
}

func chunkTypes(p *PNG) []string {
	var out []string
	for _, c := range p.Chunks() {
		out = append(out, c.ChunkType().String())
	}
	return out
}

func TestFromChunks(t *testing.T) {
	p := testingPNG(t)
	if got := len(p.Chunks()); got != 3 {
		t.Fatalf("len(Chunks()) = %d, want 3", got)
	}
}

func TestParseValid(t *testing.T) {
	var raw []byte
	raw = append(raw, Signature[:]...)
	for _, c := range testingChunks(t) {
		raw = append(raw, c.Bytes()...)
	}

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := strings.Join(chunkTypes(p), ","); got != "FrSt,miDl,LASt" {
		t.Errorf("chunk order = %s", got)
	}
	if !bytes.Equal(p.Bytes(), raw) {
		t.Error("Bytes() does not reproduce the parsed input")
	}
}

func TestParseSignatureOnly(t *testing.T) {
	p, err := Parse(Signature[:])
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Chunks()) != 0 {
		t.Errorf("expected no chunks, got %d", len(p.Chunks()))
	}
}

func TestParseErrors(t *testing.T) {
	good := testingPNG(t).Bytes()

	badSig := append([]byte(nil), good...)
	badSig[1] = 'Q'

	badCRC := append([]byte(nil), good...)
	badCRC[len(badCRC)-1] ^= 0x01

	tests := []struct {
		name    string
		in      []byte
		wantErr error
	}{
		{"empty", nil, ErrTruncatedInput},
		{"short signature", Signature[:7], ErrTruncatedInput},
		{"bad signature", badSig, ErrBadSignature},
		{"chunk data without signature", good[len(Signature):], ErrBadSignature},
		{"partial trailing header", append(append([]byte(nil), good...), 0, 0, 0), ErrTruncatedInput},
		{"truncated last chunk", good[:len(good)-1], ErrTruncatedInput},
		{"bad crc", badCRC, ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if p != nil {
				t.Error("expected no PNG on error")
			}
		})
	}
}

func TestParseInvalidChunkType(t *testing.T) {
	raw := append([]byte(nil), Signature[:]...)
	raw = append(raw, rawChunk(1, "Ru1t", []byte("x"), 0)...)
	if _, err := Parse(raw); !errors.Is(err, ErrInvalidChunkType) {
		t.Fatalf("expected ErrInvalidChunkType, got %v", err)
	}
}

func TestParseReservedBitChunk(t *testing.T) {
	// byte-valid but non-conforming types still parse
	p := FromChunks([]Chunk{NewChunk(mustChunkType(t, "Rust"), []byte("ok"))})
	parsed, err := Parse(p.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, ok := parsed.ChunkByType("Rust")
	if !ok {
		t.Fatal("Rust chunk missing")
	}
	if c.ChunkType().IsValid() {
		t.Error("Rust reported valid")
	}
}

func TestAppendChunk(t *testing.T) {
	p := testingPNG(t)
	p.AppendChunk(NewChunk(mustChunkType(t, "TeSt"), []byte("Message")))
	p.AppendChunk(NewChunk(mustChunkType(t, "TeSt"), []byte("Message")))

	if got := strings.Join(chunkTypes(p), ","); got != "FrSt,miDl,LASt,TeSt,TeSt" {
		t.Errorf("chunk order = %s", got)
	}
}

func TestChunkByType(t *testing.T) {
	p := testingPNG(t)
	p.AppendChunk(NewChunk(mustChunkType(t, "ruSt"), []byte("first")))
	p.AppendChunk(NewChunk(mustChunkType(t, "ruSt"), []byte("second")))

	c, ok := p.ChunkByType("ruSt")
	if !ok {
		t.Fatal("ruSt not found")
	}
	if got, _ := c.DataAsString(); got != "first" {
		t.Errorf("found %q, want first occurrence", got)
	}

	for _, miss := range []string{"RUST", "rust", "zzzz", "ruS", ""} {
		if _, ok := p.ChunkByType(miss); ok {
			t.Errorf("ChunkByType(%q) unexpectedly found a chunk", miss)
		}
	}
}

func TestRemoveFirstChunk(t *testing.T) {
	p := FromChunks([]Chunk{
		NewChunk(mustChunkType(t, "fOOb"), []byte("foo")),
		NewChunk(mustChunkType(t, "ruSt"), []byte("first")),
		NewChunk(mustChunkType(t, "ruSt"), []byte("second")),
		NewChunk(mustChunkType(t, "LASt"), nil),
	})

	removed, err := p.RemoveFirstChunk("ruSt")
	if err != nil {
		t.Fatalf("RemoveFirstChunk: %v", err)
	}
	if got, _ := removed.DataAsString(); got != "first" {
		t.Errorf("removed %q, want first occurrence", got)
	}
	if got := strings.Join(chunkTypes(p), ","); got != "fOOb,ruSt,LASt" {
		t.Errorf("chunk order = %s", got)
	}
	left, _ := p.ChunkByType("ruSt")
	if got, _ := left.DataAsString(); got != "second" {
		t.Errorf("remaining ruSt = %q, want second", got)
	}
}

func TestRemoveFirstChunkNotFound(t *testing.T) {
	p := testingPNG(t)
	before := p.Bytes()

	if _, err := p.RemoveFirstChunk("zzzz"); !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("expected ErrChunkNotFound, got %v", err)
	}
	if !bytes.Equal(p.Bytes(), before) {
		t.Error("failed removal modified the PNG")
	}
}

func TestChunksIsACopy(t *testing.T) {
	p := testingPNG(t)
	chunks := p.Chunks()
	chunks[0] = NewChunk(mustChunkType(t, "XXXX"), nil)
	if got := p.Chunks()[0].ChunkType().String(); got != "FrSt" {
		t.Errorf("first chunk = %s after modifying Chunks() result", got)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	p := FromChunks(nil)
	for _, c := range testingChunks(t) {
		p.AppendChunk(c)
	}
	p.AppendChunk(NewChunk(mustChunkType(t, fixtureType), []byte(fixtureMessage)))

	parsed, err := Parse(p.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want, got := p.Chunks(), parsed.Chunks()
	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i].Bytes(), want[i].Bytes()) {
			t.Errorf("chunk %d differs after round trip", i)
		}
	}
}

func TestHeader(t *testing.T) {
	want := [8]byte{137, 80, 78, 71, 13, 10, 26, 10}
	if got := testingPNG(t).Header(); got != want {
		t.Errorf("Header() = %v, want %v", got, want)
	}
}

func TestPNGString(t *testing.T) {
	s := testingPNG(t).String()
	for _, want := range []string{"Chunks: 3", "FrSt", "miDl", "LASt"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
