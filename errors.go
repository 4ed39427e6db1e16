package nanotar

import (
	"errors"

	"github.com/ofersadgat/nanotar/internal/compress"
)

var (
	// ErrHeader is returned when a header field that drives decoding cannot
	// be parsed, or when Validate finds a malformed header.
	ErrHeader = errors.New("nanotar: invalid tar header")

	// ErrTruncated is returned when an entry payload extends past the end of
	// the buffer.
	ErrTruncated = errors.New("nanotar: truncated archive")
)

// Errors re-exported from internal/compress.
var (
	// ErrUnsupportedCompression is returned for a compression name or value
	// with no codec.
	ErrUnsupportedCompression = compress.ErrUnsupported

	// ErrDecompression is returned when compressed input fails to decode.
	ErrDecompression = compress.ErrDecompression
)
