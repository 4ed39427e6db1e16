package nanotar

import (
	"fmt"
	"io/fs"
	"time"
)

// EntryType is the single-byte type code of a tar header. The decoder
// passes codes it does not recognize through unchanged, so vendor
// extensions survive a decode as opaque tags.
type EntryType byte

// Header type codes.
const (
	TypeReg           EntryType = '0'
	TypeRegA          EntryType = 0 // pre-POSIX regular file
	TypeLink          EntryType = '1'
	TypeSymlink       EntryType = '2'
	TypeChar          EntryType = '3'
	TypeBlock         EntryType = '4'
	TypeDir           EntryType = '5'
	TypeFifo          EntryType = '6'
	TypeCont          EntryType = '7'
	TypeXHeader       EntryType = 'x'
	TypeXGlobalHeader EntryType = 'g'
	TypeGNULongName   EntryType = 'L'
	TypeGNULongLink   EntryType = 'K'
	TypeGNUOldLong    EntryType = 'N'
	TypeGNUMultiVol   EntryType = 'M'
	TypeGNUSparse     EntryType = 'S'
	TypeGNUDumpDir    EntryType = 'D'
	TypeGNUVolume     EntryType = 'V'
	TypeSTARSparse    EntryType = 'E'
	TypeSTARInode     EntryType = 'I'
	TypeSolarisACL    EntryType = 'A'
	TypeSolarisXHdr   EntryType = 'X'
)

// String returns a stable lowercase name for known codes. Unknown codes
// format as the raw character.
func (t EntryType) String() string {
	switch t {
	case TypeReg, TypeRegA:
		return "file"
	case TypeLink:
		return "hard link"
	case TypeSymlink:
		return "symlink"
	case TypeChar:
		return "character device"
	case TypeBlock:
		return "block device"
	case TypeDir:
		return "directory"
	case TypeFifo:
		return "fifo"
	case TypeCont:
		return "contiguous file"
	case TypeXHeader:
		return "extended header"
	case TypeXGlobalHeader:
		return "global extended header"
	case TypeGNULongName, TypeGNUOldLong:
		return "gnu long name"
	case TypeGNULongLink:
		return "gnu long link"
	case TypeGNUMultiVol:
		return "gnu multi-volume"
	case TypeGNUSparse:
		return "gnu sparse"
	case TypeGNUDumpDir:
		return "gnu dump dir"
	case TypeGNUVolume:
		return "gnu volume header"
	case TypeSTARSparse:
		return "star sparse"
	case TypeSTARInode:
		return "star inode"
	case TypeSolarisACL:
		return "solaris acl"
	case TypeSolarisXHdr:
		return "solaris extended header"
	default:
		return fmt.Sprintf("type(%c)", byte(t))
	}
}

// Attrs carries the ownership and metadata fields of an archive entry.
// Fields left at their zero value fall back to archive-wide defaults and
// then to fixed fallbacks at encode time.
type Attrs struct {
	// Mode holds the permission bits, including setuid, setgid, and sticky.
	// Type bits are carried by the entry type, not here.
	Mode fs.FileMode

	// UID and GID are the numeric owner. Zero means unset.
	UID int
	GID int

	// ModTime is the modification time, stored in the header as epoch
	// seconds.
	ModTime time.Time

	// User and Group are the symbolic owner names.
	User  string
	Group string

	// Linkname is the link target of link entries. Decoding fills it from
	// the raw header field, or from a PAX linkpath record addressed to the
	// entry when one is present.
	Linkname string

	// PAX holds the extended-header records in effect for the entry:
	// global records overlaid with the entry's own. Nil when neither kind
	// was seen.
	PAX map[string]string
}

// Entry is one archive member.
//
// Decoded entries alias the input buffer through Data; they are snapshots,
// and callers must not mutate the buffer while entries are in use. Encoding
// never mutates caller slices.
type Entry struct {
	// Name is the full path within the archive, after USTAR prefix joining
	// and long-name resolution.
	Name string

	// Type is the raw header type code.
	Type EntryType

	// Size is the payload size recorded in the header. Encoding ignores it
	// and derives sizes from Data.
	Size int64

	// Attrs carries ownership and metadata.
	Attrs Attrs

	// Data is the payload. Decoding leaves it nil for zero-size entries
	// and in metadata-only mode. Encoding writes a directory when Data is
	// nil and a regular file otherwise, including when it is empty but
	// non-nil.
	Data []byte
}

// Text returns the payload as a string. The conversion happens on each
// call and is never cached.
func (e *Entry) Text() string { return string(e.Data) }

// Raw tar mode bits beyond the permission triplet.
const (
	modeSetuid = 0o4000
	modeSetgid = 0o2000
	modeSticky = 0o1000
)

// fileMode maps raw header mode bits to an fs.FileMode.
func fileMode(raw int64) fs.FileMode {
	mode := fs.FileMode(raw).Perm()
	if raw&modeSetuid != 0 {
		mode |= fs.ModeSetuid
	}
	if raw&modeSetgid != 0 {
		mode |= fs.ModeSetgid
	}
	if raw&modeSticky != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}

// rawMode maps an fs.FileMode back to raw header mode bits.
func rawMode(mode fs.FileMode) int64 {
	raw := int64(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		raw |= modeSetuid
	}
	if mode&fs.ModeSetgid != 0 {
		raw |= modeSetgid
	}
	if mode&fs.ModeSticky != 0 {
		raw |= modeSticky
	}
	return raw
}
