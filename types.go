package nanotar

import "github.com/ofersadgat/nanotar/internal/compress"

// --- Re-exports from internal/compress ---

// Compression identifies the compression algorithm applied around the tar
// codec.
type Compression = compress.Compression

// Compression constants.
const (
	CompressionNone  = compress.None
	CompressionGzip  = compress.Gzip
	CompressionZlib  = compress.Zlib
	CompressionFlate = compress.Flate
	CompressionZstd  = compress.Zstd
	CompressionXz    = compress.Xz
	CompressionLz4   = compress.Lz4
)

// ParseCompression maps an algorithm name ("gzip", "zstd", ...) to its
// Compression value. The empty string means CompressionNone. Unknown names
// return ErrUnsupportedCompression.
func ParseCompression(name string) (Compression, error) {
	return compress.Parse(name)
}
