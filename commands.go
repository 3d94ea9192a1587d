package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gitlab.com/ketan-sonar/pngme/pkg/png"
)

// commands runs the pngme operations against files on disk. All chunk work
// happens on in-memory buffers; files are read whole and written whole.
type commands struct {
	out    io.Writer
	logger *log.Logger
}

func (c *commands) load(path string) (*png.PNG, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c.logger.Printf("read %d bytes from %s", len(contents), path)

	p, err := png.Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	c.logger.Printf("parsed %d chunks", len(p.Chunks()))
	return p, nil
}

func (c *commands) save(path string, p *png.PNG) error {
	contents := p.Bytes()
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	c.logger.Printf("wrote %d bytes to %s", len(contents), path)
	return nil
}

// encode appends a chunk holding message to the PNG at path and writes the
// result to output, or back to path when output is empty.
func (c *commands) encode(path, chunkType, message, output string) error {
	t, err := png.ParseChunkType(chunkType)
	if err != nil {
		return err
	}
	if !t.IsValid() {
		c.logger.Printf("warning: chunk type %s has the reserved bit set", t)
	}

	p, err := c.load(path)
	if err != nil {
		return err
	}
	p.AppendChunk(png.NewChunk(t, []byte(message)))

	if output == "" {
		output = path
	}
	return c.save(output, p)
}

// decode prints the message stored in the first chunk of chunkType.
func (c *commands) decode(path, chunkType string) error {
	p, err := c.load(path)
	if err != nil {
		return err
	}

	chunk, ok := p.ChunkByType(chunkType)
	if !ok {
		return fmt.Errorf("%w: %q in %s", png.ErrChunkNotFound, chunkType, path)
	}
	msg, err := chunk.DataAsString()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Secret: %s\n", msg)
	return nil
}

// remove deletes the first chunk of chunkType and writes the file back.
func (c *commands) remove(path, chunkType string) error {
	p, err := c.load(path)
	if err != nil {
		return err
	}

	removed, err := p.RemoveFirstChunk(chunkType)
	if err != nil {
		return fmt.Errorf("removing from %s: %w", path, err)
	}
	c.logger.Printf("removed %s chunk (%d bytes)", removed.ChunkType(), removed.Length())

	return c.save(path, p)
}

// print lists every chunk in the file.
func (c *commands) print(path string) error {
	p, err := c.load(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, p)
	return nil
}
