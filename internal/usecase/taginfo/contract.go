package taginfo

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain"
)

// TagReader looks up tag aliases and tag descriptions.
type TagReader interface {
	WildcardTagSearch(ctx context.Context, pattern string) ([]domain.TagAlias, error)
	GetTagInfo(ctx context.Context, tagID int64) (domain.TagInfo, error)
}
