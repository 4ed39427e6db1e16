package nanotar

import (
	"runtime"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// parallelMinAvgBytes is the minimum average payload size for concurrent
// digesting. Below this threshold the goroutine overhead outweighs the
// hashing work.
const parallelMinAvgBytes = 64 << 10

// Summary describes a decoded archive without retaining payloads.
type Summary struct {
	// Files and Dirs count regular-file and directory entries. Other entry
	// types contribute to Entries only.
	Files int
	Dirs  int

	// PayloadSize is the sum of recorded entry sizes; ArchiveSize is the
	// encoded buffer length including padding.
	PayloadSize int64
	ArchiveSize int64

	// Digest is the sha256 digest of the whole encoded archive.
	Digest digest.Digest

	// Entries holds one summary per archive entry, in archive order.
	Entries []EntrySummary
}

// EntrySummary describes a single entry.
type EntrySummary struct {
	Name string
	Type EntryType
	Size int64

	// Digest is the sha256 digest of the payload, empty for entries
	// without one.
	Digest digest.Digest
}

// Inspect decodes data and aggregates archive statistics: entry, file, and
// directory counts, payload and archive sizes, and content digests.
//
// Per-entry digests are computed concurrently, bounded by GOMAXPROCS, when
// the payloads are large enough to be worth it. The returned summary holds
// no references to data.
func Inspect(data []byte) (*Summary, error) {
	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		ArchiveSize: int64(len(data)),
		Digest:      digest.FromBytes(data),
		Entries:     make([]EntrySummary, len(entries)),
	}

	payloads := 0
	for i, e := range entries {
		s.Entries[i] = EntrySummary{Name: e.Name, Type: e.Type, Size: e.Size}
		switch e.Type {
		case TypeReg, TypeRegA:
			s.Files++
		case TypeDir:
			s.Dirs++
		}
		s.PayloadSize += e.Size
		if e.Data != nil {
			payloads++
		}
	}

	if !digestInParallel(payloads, s.PayloadSize) {
		for i, e := range entries {
			if e.Data != nil {
				s.Entries[i].Digest = digest.FromBytes(e.Data)
			}
		}
		return s, nil
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		if e.Data == nil {
			continue
		}
		eg.Go(func() error {
			s.Entries[i].Digest = digest.FromBytes(e.Data)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// digestInParallel decides between serial and concurrent digesting based on
// the average payload size.
func digestInParallel(payloads int, totalBytes int64) bool {
	if payloads < 2 || runtime.GOMAXPROCS(0) < 2 {
		return false
	}
	return totalBytes/int64(payloads) >= parallelMinAvgBytes
}
