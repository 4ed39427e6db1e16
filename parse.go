package nanotar

import (
	"fmt"
	"maps"
	"time"

	"github.com/ofersadgat/nanotar/internal/tarhdr"
)

// Parse decodes a tar archive held entirely in data and returns its entries
// in archive order.
//
// The decoder resolves USTAR prefixes, GNU long-name entries, and PAX
// extended headers; those meta entries are consumed and never returned.
// Entry payloads alias data, so the buffer must stay unmodified while the
// entries are in use. Parsing is tolerant the way standard tar readers are:
// checksums are not verified (use Validate for that) and malformed
// non-structural numeric fields decode as zero. An empty or all-zero buffer
// decodes to no entries.
func Parse(data []byte, opts ...ParseOption) ([]*Entry, error) {
	cfg := newParseConfig(opts...)
	return parseArchive(data, &cfg)
}

func parseArchive(data []byte, cfg *parseConfig) ([]*Entry, error) {
	var (
		entries   []*Entry
		globalPAX map[string]string
		nextPAX   map[string]string
	)

	for off := int64(0); off+tarhdr.BlockSize <= int64(len(data)); {
		h := tarhdr.Header(data[off : off+tarhdr.BlockSize])

		name := h.Name()
		if name == "" {
			break
		}

		size, err := h.Size()
		if err == nil && size < 0 {
			err = fmt.Errorf("negative size %d", size)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: entry at offset %d: %v", ErrHeader, off, err)
		}
		seek := tarhdr.BlockSize + tarhdr.RoundBlock(size)

		flag := EntryType(h.TypeFlag())
		switch flag {
		case TypeXHeader:
			payload, err := slicePayload(data, off, size, name)
			if err != nil {
				return nil, err
			}
			nextPAX = tarhdr.ParsePAX(payload)
			cfg.log().Debug("consumed extended header", "records", len(nextPAX), "offset", off)
			off += seek
			continue

		case TypeXGlobalHeader:
			payload, err := slicePayload(data, off, size, name)
			if err != nil {
				return nil, err
			}
			records := tarhdr.ParsePAX(payload)
			if globalPAX == nil {
				globalPAX = records
			} else {
				maps.Copy(globalPAX, records)
			}
			nextPAX = nil
			cfg.log().Debug("applied global extended header", "records", len(records), "offset", off)
			off += seek
			continue

		case TypeGNULongName, TypeGNUOldLong, TypeGNULongLink:
			payload, err := slicePayload(data, off, size, name)
			if err != nil {
				return nil, err
			}
			nextPAX = map[string]string{tarhdr.PAXPath: tarhdr.CString(payload)}
			off += seek
			continue
		}

		// A pending extended header renames the entry it precedes.
		if p := nextPAX[tarhdr.PAXPath]; p != "" {
			name = p
		} else if lp := nextPAX[tarhdr.PAXLinkpath]; lp != "" {
			name = lp
		}

		// Non-structural numeric fields decode as zero when malformed;
		// only size aborts, since it drives the cursor.
		mode, _ := h.Mode()
		uid, _ := h.UID()
		gid, _ := h.GID()
		mtime, _ := h.MTime()

		attrs := Attrs{
			Mode:     fileMode(mode),
			UID:      int(uid),
			GID:      int(gid),
			ModTime:  time.Unix(mtime, 0),
			Linkname: h.Linkname(),
			PAX:      mergePAX(globalPAX, nextPAX),
		}
		if lp := nextPAX[tarhdr.PAXLinkpath]; lp != "" {
			attrs.Linkname = lp
		}

		// The prefix field and owner names are only meaningful under the
		// exact POSIX magic. GNU archives put other data there.
		if h.Magic() == tarhdr.Magic {
			if prefix := h.Prefix(); prefix != "" {
				name = tarhdr.JoinPrefix(prefix, name)
			}
			attrs.User = h.User()
			attrs.Group = h.Group()
		}

		entry := &Entry{Name: name, Type: flag, Size: size, Attrs: attrs}
		nextPAX = nil

		if cfg.filter != nil && !cfg.filter(entry) {
			off += seek
			continue
		}

		if !cfg.metaOnly && size > 0 {
			payload, err := slicePayload(data, off, size, name)
			if err != nil {
				return nil, err
			}
			entry.Data = payload
		}

		entries = append(entries, entry)
		off += seek
	}

	cfg.log().Debug("decoded archive", "entries", len(entries), "bytes", len(data))
	return entries, nil
}

// slicePayload returns the payload of the entry whose header sits at off,
// aliasing data. The capacity is pinned so appends cannot reach past the
// payload.
func slicePayload(data []byte, off, size int64, name string) ([]byte, error) {
	start := off + tarhdr.BlockSize
	end := start + size
	if end > int64(len(data)) {
		return nil, fmt.Errorf("%w: entry %q needs %d payload bytes at offset %d, %d available",
			ErrTruncated, name, size, start, int64(len(data))-start)
	}
	return data[start:end:end], nil
}

// mergePAX overlays the entry's own records onto the global ones in a fresh
// map. Returns nil when neither kind is present.
func mergePAX(global, next map[string]string) map[string]string {
	if len(global)+len(next) == 0 {
		return nil
	}
	merged := make(map[string]string, len(global)+len(next))
	maps.Copy(merged, global)
	maps.Copy(merged, next)
	return merged
}
