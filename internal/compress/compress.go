// Package compress routes archive bytes through the supported compression
// codecs. Archive adapters pick a codec by Compression value or by name and
// use the one-shot helpers for whole buffers or the writer and reader
// constructors for streaming.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

var (
	// ErrUnsupported indicates a compression name or value with no codec.
	ErrUnsupported = errors.New("nanotar: unsupported compression")

	// ErrDecompression indicates compressed input that failed to decode.
	ErrDecompression = errors.New("nanotar: decompression failed")
)

// Compression identifies a compression codec.
type Compression uint8

const (
	// None passes bytes through unchanged.
	None Compression = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zlib is RFC 1950 zlib.
	Zlib
	// Flate is raw RFC 1951 deflate.
	Flate
	// Zstd is Zstandard.
	Zstd
	// Xz is the xz container around LZMA2.
	Xz
	// Lz4 is the LZ4 frame format.
	Lz4
)

// String returns the canonical codec name.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Flate:
		return "flate"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	case Lz4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Parse maps a codec name to its Compression value.
func Parse(name string) (Compression, error) {
	switch name {
	case "none", "":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "flate":
		return Flate, nil
	case "zstd":
		return Zstd, nil
	case "xz":
		return Xz, nil
	case "lz4":
		return Lz4, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
}

// Shared zstd coders for the one-shot paths. EncodeAll and DecodeAll are
// safe for concurrent use on a single instance.
var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil)
	})
)

// Compress returns data encoded with c. None returns data unchanged.
func Compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		enc, err := zstdEncoder()
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		return enc.EncodeAll(data, nil), nil
	}

	var buf bytes.Buffer
	w, err := NewWriter(c, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress %s: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress %s: %w", c, err)
	}
	return buf.Bytes(), nil
}

// Decompress returns data decoded with c. None returns data unchanged.
// Decode failures wrap ErrDecompression.
func Decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		dec, err := zstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
		}
		return out, nil
	}

	r, err := NewReader(c, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}

// NewWriter wraps w with a c-encoding writer. The returned writer must be
// closed to flush the codec trailer; closing it does not close w.
func NewWriter(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case Flate:
		fw, err := flate.NewWriter(w, flate.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("create flate writer: %w", err)
		}
		return fw, nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
		if err != nil {
			return nil, fmt.Errorf("create zstd writer: %w", err)
		}
		return zw, nil
	case Xz:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create xz writer: %w", err)
		}
		return xw, nil
	case Lz4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, c)
	}
}

// NewReader wraps r with a c-decoding reader. Construction failures from a
// bad stream header wrap ErrDecompression.
func NewReader(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
		}
		return gr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
		}
		return zr, nil
	case Flate:
		return flate.NewReader(r), nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
		}
		return zr.IOReadCloser(), nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
		}
		return io.NopCloser(xr), nil
	case Lz4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
