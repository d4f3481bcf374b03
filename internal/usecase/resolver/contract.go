package resolver

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain/content"
)

// RepresentationStore reads and builds cached representation sets.
type RepresentationStore interface {
	// Representations returns the cached set ordered by ascending
	// compatibility level; empty (not an error) when never built.
	Representations(ctx context.Context, contentID int64) ([]content.Representation, error)
	// BuildRepresentations indexes a set descriptor file and persists the
	// result.
	BuildRepresentations(ctx context.Context, contentID int64, descriptorPath string) error
}

// Codec probes and transcodes image files.
type Codec interface {
	// ProbeArithmetic reports whether a JPEG uses arithmetic entropy
	// coding. The error unwraps to domain.ErrUnsupportedFormat when the
	// file is not a JPEG at all.
	ProbeArithmetic(path string) (bool, error)
	// Transcode re-encodes the file's first frame as a size-constrained
	// WebP.
	Transcode(path string) ([]byte, error)
}
