// Package taginfo answers tag lookup commands: wildcard alias search with
// one formatted line per match.
package taginfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/tier"
	"github.com/medialib/gallerybot/internal/logger"
)

// Replies for queries that produce no listing.
const (
	NothingFound   = "Nothing found."
	ExactLookupTBD = "Exact tag lookup is not implemented yet, use a * wildcard."
)

// Service serves tag lookups.
type Service struct {
	tags TagReader
}

// New creates a tag lookup service.
func New(tags TagReader) *Service {
	return &Service{tags: tags}
}

// Lookup resolves a tag query into display lines, one alias per line.
// Only wildcard patterns are supported. Banned callers get
// domain.ErrForbidden without touching the index.
func (s *Service) Lookup(ctx context.Context, caller tier.Tier, pattern string) ([]string, error) {
	if !caller.AtLeast(tier.Safe) {
		return nil, domain.ErrForbidden
	}
	if !strings.Contains(pattern, "*") {
		return []string{ExactLookupTBD}, nil
	}

	aliases, err := s.tags.WildcardTagSearch(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("wildcard search %q: %w", pattern, err)
	}
	if len(aliases) == 0 {
		return []string{NothingFound}, nil
	}

	log := logger.FromContext(ctx)
	lines := make([]string, 0, len(aliases))
	for _, a := range aliases {
		info, err := s.tags.GetTagInfo(ctx, a.TagID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Alias points at a tag that no longer exists; still
				// worth listing the id.
				lines = append(lines, fmt.Sprintf("%s → id%d", a.Alias, a.TagID))
				continue
			}
			return nil, fmt.Errorf("tag info %d: %w", a.TagID, err)
		}
		lines = append(lines, fmt.Sprintf("%s → id%d: %s (%s)", a.Alias, a.TagID, info.Name, info.Category))
	}
	log.Debug("tag lookup", zap.String("pattern", pattern), zap.Int("matches", len(lines)))
	return lines, nil
}
