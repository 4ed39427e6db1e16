package nanotar

import (
	"fmt"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Descriptor returns an OCI content descriptor for an encoded archive, for
// callers that push archives as image layers. The media type reflects the
// compression the archive was encoded with; only CompressionNone,
// CompressionGzip, and CompressionZstd have registered OCI layer media
// types, and any other value returns ErrUnsupportedCompression.
func Descriptor(data []byte, c Compression) (ocispec.Descriptor, error) {
	var mediaType string
	switch c {
	case CompressionNone:
		mediaType = ocispec.MediaTypeImageLayer
	case CompressionGzip:
		mediaType = ocispec.MediaTypeImageLayerGzip
	case CompressionZstd:
		mediaType = ocispec.MediaTypeImageLayerZstd
	default:
		return ocispec.Descriptor{}, fmt.Errorf("%w: no OCI layer media type for %s",
			ErrUnsupportedCompression, c)
	}

	return ocispec.Descriptor{
		MediaType: mediaType,
		Digest:    digest.FromBytes(data),
		Size:      int64(len(data)),
	}, nil
}
