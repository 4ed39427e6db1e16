// Package testutil provides shared archive fixtures for tests and benchmarks.
//
// Fixtures come in two flavors: StdlibTar drives archive/tar to produce
// layouts the codec must interoperate with, and RawEntry assembles header
// blocks byte by byte for shapes the standard library writer refuses to emit.
package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ofersadgat/nanotar/internal/tarhdr"
)

// FixedTime pins fixture modification times so archive bytes are reproducible.
var FixedTime = time.Unix(1700000000, 0)

// File is one entry fed to archive/tar when building fixtures.
type File struct {
	Header *tar.Header
	Body   []byte
}

// StdlibTar builds an archive with the standard library's tar writer, which
// pins the byte layout the codec must understand. Sizes are derived from the
// body and zero modification times default to FixedTime.
func StdlibTar(tb testing.TB, files ...File) []byte {
	tb.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, f := range files {
		if f.Header.Size == 0 && len(f.Body) > 0 {
			f.Header.Size = int64(len(f.Body))
		}
		if f.Header.ModTime.IsZero() && f.Header.Typeflag != tar.TypeXGlobalHeader {
			f.Header.ModTime = FixedTime
		}
		require.NoError(tb, tw.WriteHeader(f.Header), "WriteHeader %s", f.Header.Name)
		if len(f.Body) > 0 {
			_, err := tw.Write(f.Body)
			require.NoError(tb, err, "Write %s", f.Header.Name)
		}
	}
	require.NoError(tb, tw.Close())
	return buf.Bytes()
}

// ReadStdlibTar decodes an archive with the standard library's tar reader,
// which also verifies every header checksum along the way.
func ReadStdlibTar(tb testing.TB, data []byte) []*tar.Header {
	tb.Helper()
	var headers []*tar.Header
	tr := tar.NewReader(bytes.NewReader(data))
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return headers
		}
		require.NoError(tb, err, "stdlib reader rejected the archive")
		headers = append(headers, h)
	}
}

// RawEntry builds a header block and padded payload at the byte level, for
// shapes the standard library writer cannot produce. The mutate hook runs
// before the checksum is written, so mutated headers still validate.
func RawEntry(tb testing.TB, name string, flag byte, payload []byte, mutate func(tarhdr.Header)) []byte {
	tb.Helper()
	block := make([]byte, tarhdr.BlockSize)
	h := tarhdr.Header(block)
	h.SetName(name)
	h.SetMode(0o644)
	h.SetUID(1000)
	h.SetGID(1000)
	h.SetSize(int64(len(payload)))
	h.SetMTime(FixedTime.Unix())
	h.SetTypeFlag(flag)
	h.SetMagic()
	if mutate != nil {
		mutate(h)
	}
	h.SetChecksum()

	out := append(block, payload...)
	pad := tarhdr.RoundBlock(int64(len(payload))) - int64(len(payload))
	return append(out, make([]byte, pad)...)
}
