// Package nanotar reads and writes POSIX tar archives held entirely in
// memory.
//
// The codec works on byte buffers rather than streams: Parse decodes a
// buffer into entries, resolving USTAR path prefixes, GNU long-name
// entries, and PAX extended headers along the way, and Create encodes
// entries into a conformant USTAR buffer with correct padding and
// checksums. ParseGzip, CreateGzip, and CreateGzipStream wrap the codec in
// a compression transform, gzip by default.
//
// # Quick Start
//
// Decode an archive:
//
//	entries, err := nanotar.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for _, e := range entries {
//	    fmt.Println(e.Name, e.Size)
//	}
//
// Encode one:
//
//	data, err := nanotar.Create([]nanotar.Entry{
//	    {Name: "docs"},
//	    {Name: "docs/readme.md", Data: []byte("# readme\n")},
//	})
//
// Compressed archives work the same way:
//
//	blob, err := nanotar.CreateGzip(entries,
//	    nanotar.CreateWithCompression(nanotar.CompressionZstd),
//	)
//
// # Zero copy
//
// Decoded entry payloads alias the input buffer instead of copying it, so
// decoding is cheap even for large archives, and the buffer must stay
// unmodified while entries are in use. ParseWithMetaOnly skips payloads
// entirely and ParseWithFilter drops unwanted entries before their
// payloads are sliced.
//
// # Tolerance
//
// Parse accepts what standard tar readers accept: checksums are not
// verified and malformed non-structural fields decode as zero values. Use
// Validate to check checksums, numeric fields, and payload bounds
// strictly, and Inspect to summarize an archive without holding onto its
// payloads.
package nanotar
