package picker

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain/content"
	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/search"
)

// Searcher evaluates composed tag groups against the catalog index.
type Searcher interface {
	Search(
		ctx context.Context, groups []query.Group, limit, offset int,
		order search.Order, hidden search.HiddenFiltering,
	) ([]int64, error)
}

// MetadataReader hydrates content records.
type MetadataReader interface {
	GetMetadata(ctx context.Context, id int64) (content.Record, error)
}

// PostRegistrar records deliveries and mints posting ids.
type PostRegistrar interface {
	RegisterPost(ctx context.Context, userID, contentID int64) (int64, error)
}

// Resolver turns a record into a deliverable and a caption.
type Resolver interface {
	Resolve(ctx context.Context, rec content.Record, postID int64) (content.Deliverable, string)
}
