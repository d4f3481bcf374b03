package uploader

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/content"
)

// PostReader looks up per-delivery posting records.
type PostReader interface {
	GetPost(ctx context.Context, postID int64) (domain.Post, error)
}

// MetadataReader hydrates content records.
type MetadataReader interface {
	GetMetadata(ctx context.Context, id int64) (content.Record, error)
}

// RepresentationReader reads cached representation sets.
type RepresentationReader interface {
	Representations(ctx context.Context, contentID int64) ([]content.Representation, error)
}
