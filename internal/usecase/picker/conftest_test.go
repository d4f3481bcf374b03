package picker

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain/content"
	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/search"
)

type searchCall struct {
	groups []query.Group
	limit  int
	offset int
	order  search.Order
	hidden search.HiddenFiltering
}

type mockSearcher struct {
	calls []searchCall
	ids   []int64
	err   error
}

func (m *mockSearcher) Search(
	_ context.Context, groups []query.Group, limit, offset int,
	order search.Order, hidden search.HiddenFiltering,
) ([]int64, error) {
	m.calls = append(m.calls, searchCall{groups: groups, limit: limit, offset: offset, order: order, hidden: hidden})
	return m.ids, m.err
}

type mockMetadata struct {
	rec content.Record
	err error
}

func (m *mockMetadata) GetMetadata(_ context.Context, _ int64) (content.Record, error) {
	return m.rec, m.err
}

type registeredPost struct {
	userID    int64
	contentID int64
}

type mockPosts struct {
	nextID int64
	calls  []registeredPost
	err    error
}

func (m *mockPosts) RegisterPost(_ context.Context, userID, contentID int64) (int64, error) {
	m.calls = append(m.calls, registeredPost{userID: userID, contentID: contentID})
	if m.err != nil {
		return 0, m.err
	}
	return m.nextID, nil
}

type resolveCall struct {
	rec    content.Record
	postID int64
}

type mockResolver struct {
	calls   []resolveCall
	img     content.Deliverable
	caption string
}

func (m *mockResolver) Resolve(_ context.Context, rec content.Record, postID int64) (content.Deliverable, string) {
	m.calls = append(m.calls, resolveCall{rec: rec, postID: postID})
	return m.img, m.caption
}
