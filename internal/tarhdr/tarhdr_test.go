package tarhdr

import (
	"archive/tar"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOctal(t *testing.T) {
	t.Parallel()

	t.Run("zero padded", func(t *testing.T) {
		t.Parallel()
		v, err := parseOctal([]byte("0000644\x00"))
		require.NoError(t, err)
		assert.Equal(t, int64(0o644), v)
	})

	t.Run("space padded", func(t *testing.T) {
		t.Parallel()
		v, err := parseOctal([]byte("  644 \x00\x00"))
		require.NoError(t, err)
		assert.Equal(t, int64(0o644), v)
	})

	t.Run("all pad is zero", func(t *testing.T) {
		t.Parallel()
		v, err := parseOctal([]byte("\x00\x00\x00\x00\x00\x00\x00\x00"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), v)
	})

	t.Run("invalid digit", func(t *testing.T) {
		t.Parallel()
		_, err := parseOctal([]byte("00abc\x00\x00\x00"))
		assert.Error(t, err, "expected error for non-octal digits")
	})
}

func TestPutOctal(t *testing.T) {
	t.Parallel()

	t.Run("pads to field width", func(t *testing.T) {
		t.Parallel()
		field := make([]byte, 8)
		putOctal(field, 0o644)
		assert.Equal(t, []byte("0000644\x00"), field)
	})

	t.Run("wide value keeps leading digits", func(t *testing.T) {
		t.Parallel()
		field := make([]byte, 4)
		putOctal(field, 0o1234567)
		assert.Equal(t, []byte("1234"), field)
	})

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()
		field := make([]byte, 12)
		putOctal(field, 1234567)
		v, err := parseOctal(field)
		require.NoError(t, err)
		assert.Equal(t, int64(1234567), v)
	})
}

func TestCString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "etc/passwd", CString([]byte("etc/passwd\x00\x00junk")))
	assert.Equal(t, "no-nul", CString([]byte("no-nul")))
	assert.Equal(t, "", CString([]byte("\x00abc")))
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	h := Header(make([]byte, BlockSize))
	h.SetName("dir/file.txt")
	h.SetMode(0o644)
	h.SetUID(1000)
	h.SetGID(1000)
	h.SetSize(42)
	h.SetMTime(1700000000)
	h.SetTypeFlag('0')
	h.SetMagic()
	h.SetUser("operator")
	h.SetGroup("staff")
	h.SetChecksum()

	assert.Equal(t, "dir/file.txt", h.Name())
	assert.Equal(t, byte('0'), h.TypeFlag())
	assert.Equal(t, Magic, h.Magic())
	assert.Equal(t, "operator", h.User())
	assert.Equal(t, "staff", h.Group())

	size, err := h.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(42), size)

	mtime, err := h.MTime()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), mtime)

	recorded, err := h.Checksum()
	require.NoError(t, err)
	assert.Equal(t, Checksum(h), recorded, "recorded checksum must match recomputation")
}

func TestSetChecksumFormat(t *testing.T) {
	t.Parallel()

	h := Header(make([]byte, BlockSize))
	h.SetName("a")
	h.SetMagic()
	h.SetChecksum()

	field := string(h[ChecksumOff : ChecksumOff+ChecksumLen])
	digits := strings.TrimRight(field, " ")
	assert.NotEmpty(t, digits, "checksum digits missing")
	assert.Equal(t, strings.Repeat(" ", ChecksumLen-len(digits)), field[len(digits):],
		"bytes past the digits must stay spaces")
}

func TestChecksumMatchesStdlib(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "conformance.txt",
		Mode: 0o644,
		Size: 5,
	}))
	_, err := tw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	h := Header(buf.Bytes()[:BlockSize])
	recorded, err := h.Checksum()
	require.NoError(t, err)
	assert.Equal(t, recorded, Checksum(h), "checksum disagrees with archive/tar")
}

func TestIsZero(t *testing.T) {
	t.Parallel()

	h := Header(make([]byte, BlockSize))
	assert.True(t, h.IsZero())
	h[BlockSize-1] = 1
	assert.False(t, h.IsZero())
}

func TestRoundBlock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), RoundBlock(0))
	assert.Equal(t, int64(512), RoundBlock(1))
	assert.Equal(t, int64(512), RoundBlock(512))
	assert.Equal(t, int64(1024), RoundBlock(513))
}

func TestRoundRecord(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), RoundRecord(0))
	assert.Equal(t, int64(10240), RoundRecord(1))
	assert.Equal(t, int64(10240), RoundRecord(10240))
	assert.Equal(t, int64(20480), RoundRecord(10241))
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		file   string
		want   string
	}{
		{"neither slashed", "deep/prefix", "file.txt", "deep/prefix/file.txt"},
		{"prefix slashed", "deep/prefix/", "file.txt", "deep/prefix/file.txt"},
		{"name slashed", "deep/prefix", "/file.txt", "deep/prefix/file.txt"},
		{"both slashed", "deep/prefix/", "/file.txt", "deep/prefix/file.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, JoinPrefix(tt.prefix, tt.file))
		})
	}
}

func TestParsePAX(t *testing.T) {
	t.Parallel()

	t.Run("records", func(t *testing.T) {
		t.Parallel()
		payload := []byte("27 path=very/long/path.txt\n20 mtime=1700000000\n")
		records := ParsePAX(payload)
		assert.Equal(t, "very/long/path.txt", records[PAXPath])
		assert.Equal(t, "1700000000", records[PAXMTime])
	})

	t.Run("value containing equals", func(t *testing.T) {
		t.Parallel()
		records := ParsePAX([]byte("22 comment=key=value\n"))
		assert.Equal(t, "key=value", records["comment"])
	})

	t.Run("length prefix not validated", func(t *testing.T) {
		t.Parallel()
		records := ParsePAX([]byte("999 path=short\n"))
		assert.Equal(t, "short", records[PAXPath])
	})

	t.Run("malformed lines skipped", func(t *testing.T) {
		t.Parallel()
		records := ParsePAX([]byte("nospace\n12 nokeyvalue\n9 =orphan\n"))
		assert.Empty(t, records)
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ParsePAX(nil))
	})
}
