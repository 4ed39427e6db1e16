package tarhdr

import "strings"

// PAX keywords recognized by the decoder.
const (
	PAXPath     = "path"
	PAXLinkpath = "linkpath"
	PAXSize     = "size"
	PAXUID      = "uid"
	PAXGID      = "gid"
	PAXUname    = "uname"
	PAXGname    = "gname"
	PAXMTime    = "mtime"
)

// ParsePAX parses a PAX extended header payload of newline-delimited
// "length keyword=value" records. The length prefix is not validated, so
// values must not embed newlines; lines with no keyword are skipped.
func ParsePAX(payload []byte) map[string]string {
	records := make(map[string]string)
	for line := range strings.SplitSeq(string(payload), "\n") {
		_, rest, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(rest, "=")
		if !ok || key == "" {
			continue
		}
		records[key] = value
	}
	return records
}

// JoinPrefix joins a USTAR prefix field with the name field, inserting a
// slash only when neither side supplies one.
func JoinPrefix(prefix, name string) string {
	ps := strings.HasSuffix(prefix, "/")
	ns := strings.HasPrefix(name, "/")
	switch {
	case ps && ns:
		return prefix + name[1:]
	case ps || ns:
		return prefix + name
	default:
		return prefix + "/" + name
	}
}
