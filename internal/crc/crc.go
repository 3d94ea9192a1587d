// Package crc implements the CRC-32 used by PNG chunks.
//
// The algorithm is the one from the PNG specification, Annex D: reflected
// polynomial 0xedb88320, register preset to all ones and inverted at the end.
package crc

import "sync"

const polynomial = 0xedb88320

var (
	table     [256]uint32
	tableOnce sync.Once
)

func makeTable() {
	for n := 0; n < 256; n++ {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = polynomial ^ (c >> 1)
			} else {
				c = c >> 1
			}
		}
		table[n] = c
	}
}

// Update runs buf through the CRC register c. The register is neither
// preset nor inverted here; start from 0xffffffff and invert the result
// yourself, or use Checksum.
func Update(c uint32, buf []byte) uint32 {
	tableOnce.Do(makeTable)

	for _, b := range buf {
		c = table[(c^uint32(b))&0xff] ^ (c >> 8)
	}
	return c
}

// Checksum returns the CRC-32 of buf.
func Checksum(buf []byte) uint32 {
	return Update(0xffffffff, buf) ^ 0xffffffff
}

// ChecksumParts returns the CRC-32 of the concatenation of parts without
// building the concatenated buffer.
func ChecksumParts(parts ...[]byte) uint32 {
	c := uint32(0xffffffff)
	for _, p := range parts {
		c = Update(c, p)
	}
	return c ^ 0xffffffff
}
