// Package picker runs the content command pipeline: authorize the caller,
// compose the mandatory policy groups in front of the parsed query, draw one
// random match, record the delivery, and resolve it into a sendable image.
package picker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/content"
	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/search"
	"github.com/medialib/gallerybot/internal/domain/tier"
	"github.com/medialib/gallerybot/internal/logger"
	"github.com/medialib/gallerybot/internal/usecase/policy"
)

// Delivery is one picked piece of content, ready for the transport.
type Delivery struct {
	Image   content.Deliverable
	Caption string
	PostID  int64
}

// Service orchestrates one command invocation end to end.
type Service struct {
	composer *policy.Composer
	catalog  Searcher
	metadata MetadataReader
	posts    PostRegistrar
	resolver Resolver
}

// New creates a picker service.
func New(composer *policy.Composer, catalog Searcher, metadata MetadataReader, posts PostRegistrar, resolver Resolver) *Service {
	return &Service{
		composer: composer,
		catalog:  catalog,
		metadata: metadata,
		posts:    posts,
		resolver: resolver,
	}
}

// Pick serves one content command. The effective tier must meet the
// command's minimum (domain.ErrForbidden otherwise); an empty draw is
// domain.ErrNoMatch. Policy groups precede the user's parsed groups, which
// is equivalent under conjunction but keeps captured queries inspectable.
func (s *Service) Pick(ctx context.Context, cmd policy.Command, effective tier.Tier, userID int64, rawQuery string) (Delivery, error) {
	if !effective.AtLeast(cmd.MinTier()) {
		return Delivery{}, domain.ErrForbidden
	}

	groups := append(s.composer.Compose(cmd, effective), query.Parse(rawQuery)...)

	// A failing search and an empty one read the same to the caller:
	// nothing to deliver.
	ids, err := s.catalog.Search(ctx, groups, 1, 0, search.Random, search.Filter)
	if err != nil {
		logger.FromContext(ctx).Warn("search failed", zap.Error(err))
		return Delivery{}, domain.ErrNoMatch
	}
	if len(ids) == 0 {
		return Delivery{}, domain.ErrNoMatch
	}

	rec, err := s.metadata.GetMetadata(ctx, ids[0])
	if err != nil {
		return Delivery{}, fmt.Errorf("metadata for %d: %w", ids[0], err)
	}

	postID, err := s.posts.RegisterPost(ctx, userID, rec.ID())
	if err != nil {
		return Delivery{}, fmt.Errorf("register post: %w", err)
	}

	img, caption := s.resolver.Resolve(ctx, rec, postID)
	return Delivery{Image: img, Caption: caption, PostID: postID}, nil
}
