package png

import "errors"

// Errors returned by the codec. Callers match them with errors.Is; the
// returned values usually wrap one of these with position details.
var (
	ErrInvalidChunkType = errors.New("invalid chunk type")
	ErrTruncatedInput   = errors.New("truncated input")
	ErrBadSignature     = errors.New("bad PNG signature")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrInvalidText      = errors.New("chunk data is not valid UTF-8")
)
