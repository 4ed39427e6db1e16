// Package tarhdr implements the fixed 512-byte tar header block: field
// offsets and widths, octal numeric encoding, NUL-terminated strings, and
// the header checksum.
//
// The offsets and widths are the on-disk compatibility contract with
// standard tar tooling and must not change.
package tarhdr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// BlockSize is the tar block granularity. Every header occupies exactly one
// block and every payload is zero-padded up to a whole number of blocks.
const BlockSize = 512

// RecordSize is the canonical tar record granularity (20 blocks). Encoded
// archives are sized to a whole number of records; the zero fill past the
// last entry doubles as the end-of-archive marker.
const RecordSize = 20 * BlockSize

// USTAR identification bytes.
const (
	Magic   = "ustar"
	Version = "00"
)

// Field offsets and widths within a header block.
const (
	NameOff     = 0
	NameLen     = 100
	ModeOff     = 100
	ModeLen     = 8
	UIDOff      = 108
	UIDLen      = 8
	GIDOff      = 116
	GIDLen      = 8
	SizeOff     = 124
	SizeLen     = 12
	MTimeOff    = 136
	MTimeLen    = 12
	ChecksumOff = 148
	ChecksumLen = 8
	TypeOff     = 156
	LinknameOff = 157
	LinknameLen = 100
	MagicOff    = 257
	MagicLen    = 6
	VersionOff  = 263
	VersionLen  = 2
	UserOff     = 265
	UserLen     = 32
	GroupOff    = 297
	GroupLen    = 32
	DevMajorOff = 329
	DevMajorLen = 8
	DevMinorOff = 337
	DevMinorLen = 8
	PrefixOff   = 345
	PrefixLen   = 155
)

// Header is a view of a single 512-byte header block. Accessors parse on
// demand and never copy the underlying buffer; setters write in place and
// assume a zero-initialized block, so unwritten field bytes keep their
// zero fill.
type Header []byte

// Name returns the NUL-terminated name field.
func (h Header) Name() string { return CString(h[NameOff : NameOff+NameLen]) }

// Mode parses the mode field as octal.
func (h Header) Mode() (int64, error) { return parseOctal(h[ModeOff : ModeOff+ModeLen]) }

// UID parses the uid field as octal.
func (h Header) UID() (int64, error) { return parseOctal(h[UIDOff : UIDOff+UIDLen]) }

// GID parses the gid field as octal.
func (h Header) GID() (int64, error) { return parseOctal(h[GIDOff : GIDOff+GIDLen]) }

// Size parses the size field as octal.
func (h Header) Size() (int64, error) { return parseOctal(h[SizeOff : SizeOff+SizeLen]) }

// MTime parses the mtime field as octal epoch seconds.
func (h Header) MTime() (int64, error) { return parseOctal(h[MTimeOff : MTimeOff+MTimeLen]) }

// Checksum parses the recorded checksum field as octal.
func (h Header) Checksum() (int64, error) {
	return parseOctal(h[ChecksumOff : ChecksumOff+ChecksumLen])
}

// TypeFlag returns the raw single-byte type code.
func (h Header) TypeFlag() byte { return h[TypeOff] }

// Linkname returns the NUL-terminated link target field.
func (h Header) Linkname() string { return CString(h[LinknameOff : LinknameOff+LinknameLen]) }

// Magic returns the NUL-terminated magic field. USTAR headers read exactly
// "ustar"; GNU headers read "ustar " and do not match, as the GNU format
// reuses the prefix region for other data.
func (h Header) Magic() string { return CString(h[MagicOff : MagicOff+MagicLen]) }

// User returns the NUL-terminated owner user name field.
func (h Header) User() string { return CString(h[UserOff : UserOff+UserLen]) }

// Group returns the NUL-terminated owner group name field.
func (h Header) Group() string { return CString(h[GroupOff : GroupOff+GroupLen]) }

// Prefix returns the NUL-terminated USTAR path prefix field.
func (h Header) Prefix() string { return CString(h[PrefixOff : PrefixOff+PrefixLen]) }

// IsZero reports whether the block is entirely zero bytes. Two consecutive
// zero blocks form the formal archive terminator.
func (h Header) IsZero() bool {
	for _, b := range h[:BlockSize] {
		if b != 0 {
			return false
		}
	}
	return true
}

// SetName writes the name field, truncating to 100 bytes.
func (h Header) SetName(s string) { putString(h[NameOff:NameOff+NameLen], s) }

// SetMode writes the mode field as zero-padded octal.
func (h Header) SetMode(v int64) { putOctal(h[ModeOff:ModeOff+ModeLen], v) }

// SetUID writes the uid field as zero-padded octal.
func (h Header) SetUID(v int64) { putOctal(h[UIDOff:UIDOff+UIDLen], v) }

// SetGID writes the gid field as zero-padded octal.
func (h Header) SetGID(v int64) { putOctal(h[GIDOff:GIDOff+GIDLen], v) }

// SetSize writes the size field as zero-padded octal.
func (h Header) SetSize(v int64) { putOctal(h[SizeOff:SizeOff+SizeLen], v) }

// SetMTime writes the mtime field as zero-padded octal epoch seconds.
func (h Header) SetMTime(v int64) { putOctal(h[MTimeOff:MTimeOff+MTimeLen], v) }

// SetTypeFlag writes the single-byte type code.
func (h Header) SetTypeFlag(flag byte) { h[TypeOff] = flag }

// SetMagic writes the USTAR magic and version fields.
func (h Header) SetMagic() {
	putString(h[MagicOff:MagicOff+MagicLen], Magic)
	putString(h[VersionOff:VersionOff+VersionLen], Version)
}

// SetUser writes the owner user name field, truncating to 32 bytes.
func (h Header) SetUser(s string) { putString(h[UserOff:UserOff+UserLen], s) }

// SetGroup writes the owner group name field, truncating to 32 bytes.
func (h Header) SetGroup(s string) { putString(h[GroupOff:GroupOff+GroupLen], s) }

// SetChecksum blanks the checksum field to spaces, sums the block, and
// writes the sum as bare octal digits at the start of the field. The digits
// are not zero-padded and carry no terminator; the remaining bytes stay
// spaces.
func (h Header) SetChecksum() {
	copy(h[ChecksumOff:ChecksumOff+ChecksumLen], blankChecksum)
	copy(h[ChecksumOff:ChecksumOff+ChecksumLen], strconv.FormatInt(Checksum(h), 8))
}

var blankChecksum = []byte("        ")

// Checksum computes the unsigned byte sum of a header block with the
// checksum field counted as eight ASCII spaces, regardless of its contents.
func Checksum(h Header) int64 {
	sum := int64(ChecksumLen) * ' '
	for i, b := range h[:BlockSize] {
		if i >= ChecksumOff && i < ChecksumOff+ChecksumLen {
			continue
		}
		sum += int64(b)
	}
	return sum
}

// RoundBlock rounds n up to the next multiple of BlockSize.
func RoundBlock(n int64) int64 {
	return (n + BlockSize - 1) &^ (BlockSize - 1)
}

// RoundRecord rounds n up to the next multiple of RecordSize.
func RoundRecord(n int64) int64 {
	if rem := n % RecordSize; rem != 0 {
		return n + RecordSize - rem
	}
	return n
}

// CString returns the bytes of b up to the first NUL as a string. Header
// string fields and GNU long-name payloads are NUL-terminated.
func CString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// putString copies s into field, truncating to the field width. The tail of
// the field is left untouched.
func putString(field []byte, s string) {
	copy(field, s)
}

// putOctal writes v as octal digits left-padded with zeros to one byte short
// of the field width, leaving a trailing NUL. Values too wide for the field
// lose their trailing digits.
func putOctal(field []byte, v int64) {
	s := strconv.FormatInt(v, 8)
	if w := len(field) - 1; len(s) < w {
		s = strings.Repeat("0", w-len(s)) + s
	}
	putString(field, s)
}

// parseOctal parses an octal numeric field. Fields are ASCII octal digits
// padded with NULs or spaces on either side; an all-pad field is zero.
func parseOctal(field []byte) (int64, error) {
	s := strings.Trim(string(field), " \x00")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 8, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid octal field %q", s)
	}
	return v, nil
}
