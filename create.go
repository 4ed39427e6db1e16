package nanotar

import (
	"time"

	"github.com/ofersadgat/nanotar/internal/tarhdr"
)

// Create encodes entries into a single USTAR archive buffer.
//
// Entries are written in slice order. An entry with nil Data is encoded as
// a directory and one with non-nil Data as a regular file; sizes come from
// len(Data) and the Size field is ignored. Attribute fields left unset fall
// back to the CreateWithDefaults attributes and then to mode 0o775 for
// directories, 0o664 for files, uid and gid 1000, and the encoding time.
//
// The output buffer is freshly allocated, padded to a whole number of
// 10240-byte records, and terminated by its zero fill. Caller slices are
// never mutated. Names longer than 100 bytes and numbers wider than their
// field are truncated, matching the fixed USTAR field widths.
func Create(entries []Entry, opts ...CreateOption) ([]byte, error) {
	cfg := newCreateConfig(opts...)
	return createArchive(entries, &cfg)
}

func createArchive(entries []Entry, cfg *createConfig) ([]byte, error) {
	sizes := make([]int64, len(entries))
	var total int64
	for i := range entries {
		if entries[i].Data != nil {
			sizes[i] = int64(len(entries[i].Data))
		}
		total += tarhdr.BlockSize + tarhdr.RoundBlock(sizes[i])
	}

	out := make([]byte, tarhdr.RoundRecord(total))
	now := time.Now()

	var off int64
	for i := range entries {
		off += encodeEntry(out[off:], &entries[i], sizes[i], &cfg.defaults, now)
	}

	cfg.log().Debug("encoded archive", "entries", len(entries), "bytes", len(out))
	return out, nil
}

// encodeEntry writes one header block and payload at the start of buf and
// returns the number of bytes consumed, always a multiple of the block
// size. buf must be zero-filled.
func encodeEntry(buf []byte, e *Entry, size int64, defaults *Attrs, now time.Time) int64 {
	h := tarhdr.Header(buf[:tarhdr.BlockSize])
	dir := e.Data == nil

	h.SetName(e.Name)

	mode := e.Attrs.Mode
	if mode == 0 {
		mode = defaults.Mode
	}
	if mode == 0 {
		if dir {
			mode = 0o775
		} else {
			mode = 0o664
		}
	}
	h.SetMode(rawMode(mode))

	uid := e.Attrs.UID
	if uid == 0 {
		uid = defaults.UID
	}
	if uid == 0 {
		uid = 1000
	}
	h.SetUID(int64(uid))

	gid := e.Attrs.GID
	if gid == 0 {
		gid = defaults.GID
	}
	if gid == 0 {
		gid = 1000
	}
	h.SetGID(int64(gid))

	h.SetSize(size)

	mtime := e.Attrs.ModTime
	if mtime.IsZero() {
		mtime = defaults.ModTime
	}
	if mtime.IsZero() {
		mtime = now
	}
	h.SetMTime(mtime.Unix())

	if dir {
		h.SetTypeFlag(byte(TypeDir))
	} else {
		h.SetTypeFlag(byte(TypeReg))
	}

	h.SetMagic()

	user := e.Attrs.User
	if user == "" {
		user = defaults.User
	}
	h.SetUser(user)

	group := e.Attrs.Group
	if group == "" {
		group = defaults.Group
	}
	h.SetGroup(group)

	h.SetChecksum()

	copy(buf[tarhdr.BlockSize:], e.Data)
	return tarhdr.BlockSize + tarhdr.RoundBlock(size)
}
