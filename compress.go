package nanotar

import (
	"io"
	"iter"

	"github.com/ofersadgat/nanotar/internal/compress"
)

// streamChunkSize is the read granularity of CreateGzipStream.
const streamChunkSize = 32 * 1024

// ParseGzip decompresses data and decodes the result with Parse. The
// algorithm defaults to gzip and follows ParseWithCompression, so the name
// is a convention, not a constraint; CompressionNone makes it equivalent to
// Parse. The whole buffer is decompressed before any header is read.
func ParseGzip(data []byte, opts ...ParseOption) ([]*Entry, error) {
	cfg := newParseConfig(opts...)

	raw, err := compress.Decompress(cfg.compression, data)
	if err != nil {
		return nil, err
	}
	cfg.log().Debug("decompressed archive",
		"compression", cfg.compression.String(), "compressed", len(data), "raw", len(raw))

	return parseArchive(raw, &cfg)
}

// CreateGzip encodes entries with Create and compresses the archive into a
// single buffer. The algorithm defaults to gzip and follows
// CreateWithCompression.
func CreateGzip(entries []Entry, opts ...CreateOption) ([]byte, error) {
	cfg := newCreateConfig(opts...)

	raw, err := createArchive(entries, &cfg)
	if err != nil {
		return nil, err
	}

	out, err := compress.Compress(cfg.compression, raw)
	if err != nil {
		return nil, err
	}
	cfg.log().Debug("compressed archive",
		"compression", cfg.compression.String(), "raw", len(raw), "compressed", len(out))
	return out, nil
}

// CreateGzipStream encodes entries and yields the compressed archive as a
// sequence of chunks. Concatenated, the chunks equal the CreateGzip output
// for the same entries and options.
//
// The archive itself is encoded up front; only the compressed bytes stream,
// emitted as the codec produces them. Iteration stops after the first
// non-nil error. Breaking out of the loop early releases the compressor.
func CreateGzipStream(entries []Entry, opts ...CreateOption) iter.Seq2[[]byte, error] {
	cfg := newCreateConfig(opts...)

	return func(yield func([]byte, error) bool) {
		raw, err := createArchive(entries, &cfg)
		if err != nil {
			yield(nil, err)
			return
		}

		pr, pw := io.Pipe()
		go func() {
			cw, err := compress.NewWriter(cfg.compression, pw)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := cw.Write(raw); err != nil {
				pw.CloseWithError(err)
				return
			}
			pw.CloseWithError(cw.Close())
		}()
		defer pr.Close()

		for {
			buf := make([]byte, streamChunkSize)
			n, err := pr.Read(buf)
			if n > 0 && !yield(buf[:n], nil) {
				return
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}
