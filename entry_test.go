package nanotar

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryText(t *testing.T) {
	t.Parallel()

	e := &Entry{Data: []byte("utf-8 text é")}
	assert.Equal(t, "utf-8 text é", e.Text())

	assert.Empty(t, (&Entry{}).Text(), "nil payload reads as an empty string")
}

func TestEntryTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file", TypeReg.String())
	assert.Equal(t, "file", TypeRegA.String())
	assert.Equal(t, "directory", TypeDir.String())
	assert.Equal(t, "extended header", TypeXHeader.String())
	assert.Equal(t, "gnu long name", TypeGNULongName.String())
	assert.Equal(t, "type(Z)", EntryType('Z').String())
}

func TestModeBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  int64
		mode fs.FileMode
	}{
		{"plain", 0o644, 0o644},
		{"setuid", 0o4755, 0o755 | fs.ModeSetuid},
		{"setgid", 0o2711, 0o711 | fs.ModeSetgid},
		{"sticky", 0o1777, 0o777 | fs.ModeSticky},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.mode, fileMode(tt.raw))
			assert.Equal(t, tt.raw, rawMode(tt.mode), "mode bits must survive a round trip")
		})
	}
}
