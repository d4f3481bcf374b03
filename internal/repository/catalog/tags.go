package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/medialib/gallerybot/internal/db"
	"github.com/medialib/gallerybot/internal/domain"
)

// WildcardTagSearch returns tag aliases matching a glob pattern, sorted by
// alias name. The pattern is applied to alias keys as stored, so "*" works
// the way chat users expect.
func (r *Repo) WildcardTagSearch(ctx context.Context, pattern string) ([]domain.TagAlias, error) {
	prefix := domain.KeyPrefix + "alias:"
	keys, err := r.store.Scan(ctx, prefix+pattern)
	if err != nil {
		return nil, fmt.Errorf("scan aliases %q: %w", pattern, err)
	}
	sort.Strings(keys)

	aliases := make([]domain.TagAlias, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // alias deleted between SCAN and GET
			}
			return nil, fmt.Errorf("get alias %s: %w", key, err)
		}
		tagID, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed tag id for alias %s: %w", key, err)
		}
		aliases = append(aliases, domain.TagAlias{
			Alias: strings.TrimPrefix(key, prefix),
			TagID: tagID,
		})
	}
	return aliases, nil
}

// GetTagInfo returns the tag description for a tag id.
func (r *Repo) GetTagInfo(ctx context.Context, tagID int64) (domain.TagInfo, error) {
	fields, err := r.store.HGetAll(ctx, fmt.Sprintf("%stag:%d", domain.KeyPrefix, tagID))
	if err != nil {
		return domain.TagInfo{}, fmt.Errorf("hgetall tag %d: %w", tagID, err)
	}
	if len(fields) == 0 {
		return domain.TagInfo{}, domain.ErrNotFound
	}
	return domain.TagInfo{
		ID:       tagID,
		Name:     fields["name"],
		Category: fields["category"],
	}, nil
}
