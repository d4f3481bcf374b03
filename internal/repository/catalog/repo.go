// Package catalog implements the content search capability and metadata
// reads over per-tag index sets in the store.
//
// Index layout:
//
//	medialib:idx:tag:<name>  set of content ids carrying the tag
//	medialib:idx:tagid:<id>  the same sets keyed by numeric tag id
//	medialib:idx:all         every content id (universe for pure negations)
//	medialib:hidden          soft-deleted content ids
//	medialib:content:<id>    metadata hash
//
// A query is evaluated with set algebra: SUNIONSTORE for the OR within a
// group, SINTERSTORE across groups, SDIFFSTORE for negated groups and the
// hidden set. Temporary keys are deleted on every exit path.
package catalog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/content"
	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/search"
)

// store is the consumer interface for catalog operations (ISP).
type store interface {
	SUnionStore(ctx context.Context, dst string, keys ...string) error
	SInterStore(ctx context.Context, dst string, keys ...string) error
	SDiffStore(ctx context.Context, dst string, keys ...string) error
	SRandMember(ctx context.Context, key string, count int) ([]string, error)
	Del(ctx context.Context, keys ...string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase contracts for content search, metadata and tags.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search evaluates the composed tag groups and returns up to limit candidate
// ids. Only search.Random ordering is implemented; offset is ignored under
// random ordering. An empty result is returned as an empty slice, never an
// error.
func (r *Repo) Search(
	ctx context.Context, groups []query.Group, limit, offset int,
	order search.Order, hidden search.HiddenFiltering,
) ([]int64, error) {
	if order != search.Random {
		return nil, fmt.Errorf("unsupported ordering: %s", order)
	}
	if limit <= 0 {
		limit = 1
	}
	_ = offset // meaningless under random ordering

	var temps []string
	defer func() {
		if len(temps) > 0 {
			_ = r.store.Del(context.WithoutCancel(ctx), temps...)
		}
	}()

	newTemp := func() string {
		k := tempKey()
		temps = append(temps, k)
		return k
	}

	var positive, negative []string
	for _, g := range groups {
		if g.IsEmpty() {
			continue
		}
		key, err := r.groupKey(ctx, g, newTemp)
		if err != nil {
			return nil, err
		}
		if g.Negated() {
			negative = append(negative, key)
		} else {
			positive = append(positive, key)
		}
	}

	// A query with no positive groups subtracts from the whole catalog.
	if len(positive) == 0 {
		positive = []string{allKey()}
	}

	acc := newTemp()
	if err := r.store.SInterStore(ctx, acc, positive...); err != nil {
		return nil, fmt.Errorf("intersect groups: %w", err)
	}

	if hidden == search.Filter {
		negative = append(negative, hiddenKey())
	}
	if len(negative) > 0 {
		args := append([]string{acc}, negative...)
		if err := r.store.SDiffStore(ctx, acc, args...); err != nil {
			return nil, fmt.Errorf("subtract exclusions: %w", err)
		}
	}

	members, err := r.store.SRandMember(ctx, acc, limit)
	if err != nil {
		return nil, fmt.Errorf("pick random members: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed content id %q in index: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// groupKey resolves a group to a single set key, materializing a union for
// multi-tag groups.
func (r *Repo) groupKey(ctx context.Context, g query.Group, newTemp func() string) (string, error) {
	if len(g.Tags()) == 1 {
		return tagKey(g.Tags()[0]), nil
	}
	keys := make([]string, 0, len(g.Tags()))
	for _, t := range g.Tags() {
		keys = append(keys, tagKey(t))
	}
	dst := newTemp()
	if err := r.store.SUnionStore(ctx, dst, keys...); err != nil {
		return "", fmt.Errorf("union group tags: %w", err)
	}
	return dst, nil
}

// GetMetadata returns the content record for an id.
func (r *Repo) GetMetadata(ctx context.Context, id int64) (content.Record, error) {
	fields, err := r.store.HGetAll(ctx, contentKey(id))
	if err != nil {
		return content.Record{}, fmt.Errorf("hgetall content %d: %w", id, err)
	}
	if len(fields) == 0 {
		return content.Record{}, domain.ErrNotFound
	}
	return recordFromFields(id, fields), nil
}

func tagKey(t query.Tag) string {
	if t.IsID() {
		return fmt.Sprintf("%sidx:tagid:%d", domain.KeyPrefix, t.TagID())
	}
	return domain.KeyPrefix + "idx:tag:" + t.TagName()
}

func allKey() string    { return domain.KeyPrefix + "idx:all" }
func hiddenKey() string { return domain.KeyPrefix + "hidden" }

func contentKey(id int64) string {
	return fmt.Sprintf("%scontent:%d", domain.KeyPrefix, id)
}

func tempKey() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return domain.KeyPrefix + "tmp:" + hex.EncodeToString(b[:])
}
