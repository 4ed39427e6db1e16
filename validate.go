package nanotar

import (
	"fmt"

	"github.com/ofersadgat/nanotar/internal/tarhdr"
)

// Validate walks data as a tar archive and verifies what the tolerant
// decoder lets pass: every header checksum, every numeric field, and every
// payload bound. Extended-header and long-name entries are checked like any
// other entry but not interpreted.
//
// It returns nil for a well-formed archive, including an empty one, and
// otherwise reports the first violation with an error wrapping ErrHeader or
// ErrTruncated.
func Validate(data []byte) error {
	for off := int64(0); off+tarhdr.BlockSize <= int64(len(data)); {
		h := tarhdr.Header(data[off : off+tarhdr.BlockSize])

		name := h.Name()
		if name == "" {
			if !h.IsZero() {
				return fmt.Errorf("%w: unnamed non-zero header at offset %d", ErrHeader, off)
			}
			return nil
		}

		recorded, err := h.Checksum()
		if err != nil {
			return fmt.Errorf("%w: checksum of entry %q at offset %d: %v", ErrHeader, name, off, err)
		}
		if computed := tarhdr.Checksum(h); recorded != computed {
			return fmt.Errorf("%w: checksum mismatch for entry %q at offset %d: recorded %o, computed %o",
				ErrHeader, name, off, recorded, computed)
		}

		numerics := []struct {
			field string
			parse func() (int64, error)
		}{
			{"mode", h.Mode},
			{"uid", h.UID},
			{"gid", h.GID},
			{"mtime", h.MTime},
		}
		for _, n := range numerics {
			if _, err := n.parse(); err != nil {
				return fmt.Errorf("%w: %s of entry %q at offset %d: %v", ErrHeader, n.field, name, off, err)
			}
		}

		size, err := h.Size()
		if err == nil && size < 0 {
			err = fmt.Errorf("negative size %d", size)
		}
		if err != nil {
			return fmt.Errorf("%w: size of entry %q at offset %d: %v", ErrHeader, name, off, err)
		}
		if _, err := slicePayload(data, off, size, name); err != nil {
			return err
		}

		off += tarhdr.BlockSize + tarhdr.RoundBlock(size)
	}
	return nil
}
