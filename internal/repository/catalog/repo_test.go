package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/search"
)

func search1(t *testing.T, repo *Repo, groups []query.Group, limit int, hidden search.HiddenFiltering) []int64 {
	t.Helper()
	ids, err := repo.Search(context.Background(), groups, limit, 0, search.Random, hidden)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	return ids
}

func TestSearch_SingleTagGroup(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1", "2", "3")
	repo := New(fs)

	ids := search1(t, repo, []query.Group{query.Include("cat")}, 10, search.Show)
	if len(ids) != 3 {
		t.Errorf("ids = %v, want all three", ids)
	}
}

func TestSearch_GroupsIntersect(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1", "2", "3")
	fs.seedSet("medialib:idx:tag:hat", "2", "3", "4")
	repo := New(fs)

	groups := []query.Group{query.Include("cat"), query.Include("hat")}
	ids := search1(t, repo, groups, 10, search.Show)
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Errorf("ids = %v, want [2 3]", ids)
	}
}

func TestSearch_MultiTagGroupIsUnion(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1")
	fs.seedSet("medialib:idx:tag:dog", "2")
	repo := New(fs)

	groups := []query.Group{query.NewGroup(false, query.Name("cat"), query.Name("dog"))}
	ids := search1(t, repo, groups, 10, search.Show)
	if len(ids) != 2 {
		t.Errorf("ids = %v, want the union", ids)
	}
}

func TestSearch_NegatedGroupSubtracts(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1", "2", "3")
	fs.seedSet("medialib:idx:tag:dog", "2")
	repo := New(fs)

	groups := []query.Group{query.Include("cat"), query.Exclude("dog")}
	ids := search1(t, repo, groups, 10, search.Show)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
}

func TestSearch_PureNegationUsesUniverse(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:all", "1", "2", "3")
	fs.seedSet("medialib:idx:tag:dog", "2")
	repo := New(fs)

	ids := search1(t, repo, []query.Group{query.Exclude("dog")}, 10, search.Show)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
}

func TestSearch_HiddenFiltering(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1", "2")
	fs.seedSet("medialib:hidden", "2")
	repo := New(fs)

	ids := search1(t, repo, []query.Group{query.Include("cat")}, 10, search.Filter)
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("filtered ids = %v, want [1]", ids)
	}

	ids = search1(t, repo, []query.Group{query.Include("cat")}, 10, search.Show)
	if len(ids) != 2 {
		t.Errorf("unfiltered ids = %v, want both", ids)
	}
}

func TestSearch_NumericTagUsesIDIndex(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tagid:77", "5")
	repo := New(fs)

	ids := search1(t, repo, []query.Group{query.NewGroup(false, query.ID(77))}, 10, search.Show)
	if len(ids) != 1 || ids[0] != 5 {
		t.Errorf("ids = %v, want [5]", ids)
	}
}

func TestSearch_LimitCapsResults(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1", "2", "3")
	repo := New(fs)

	ids := search1(t, repo, []query.Group{query.Include("cat")}, 1, search.Show)
	if len(ids) != 1 {
		t.Errorf("ids = %v, want exactly one", ids)
	}
}

func TestSearch_TempKeysCleanedUp(t *testing.T) {
	fs := newFakeStore()
	fs.seedSet("medialib:idx:tag:cat", "1")
	fs.seedSet("medialib:idx:tag:dog", "2")
	repo := New(fs)

	groups := []query.Group{
		query.NewGroup(false, query.Name("cat"), query.Name("dog")),
		query.Exclude("dog"),
	}
	search1(t, repo, groups, 10, search.Filter)
	if leaked := fs.leakedTemps(); len(leaked) != 0 {
		t.Errorf("temp keys left behind: %v", leaked)
	}
}

func TestSearch_UnsupportedOrder(t *testing.T) {
	repo := New(newFakeStore())
	_, err := repo.Search(context.Background(), nil, 1, 0, search.Order("by_date"), search.Filter)
	if err == nil {
		t.Fatal("expected unsupported ordering error")
	}
}

func TestGetMetadata_Hydrates(t *testing.T) {
	fs := newFakeStore()
	fs.hashes["medialib:content:42"] = map[string]string{
		"file_path":   "a/b.webp",
		"title":       "T",
		"description": "D",
		"origin_name": "boorusite",
		"origin_id":   "123",
	}
	repo := New(fs)

	rec, err := repo.GetMetadata(context.Background(), 42)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if rec.ID() != 42 || rec.FilePath() != "a/b.webp" || rec.Title() != "T" {
		t.Errorf("record = %+v", rec)
	}
	name, id, ok := rec.Origin()
	if !ok || name != "boorusite" || id != 123 {
		t.Errorf("origin = %q %d %v", name, id, ok)
	}
}

func TestGetMetadata_OriginRequiresBothFields(t *testing.T) {
	fs := newFakeStore()
	fs.hashes["medialib:content:42"] = map[string]string{
		"file_path":   "a/b.webp",
		"origin_name": "boorusite",
	}
	repo := New(fs)

	rec, err := repo.GetMetadata(context.Background(), 42)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if _, _, ok := rec.Origin(); ok {
		t.Error("origin reported present without an id")
	}
}

func TestGetMetadata_Missing(t *testing.T) {
	repo := New(newFakeStore())
	_, err := repo.GetMetadata(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestWildcardTagSearch_SortedAndTrimmed(t *testing.T) {
	fs := newFakeStore()
	fs.kv["medialib:alias:red tail"] = []byte("11")
	fs.kv["medialib:alias:red mane"] = []byte("10")
	fs.kv["medialib:alias:blue"] = []byte("12")
	repo := New(fs)

	aliases, err := repo.WildcardTagSearch(context.Background(), "red*")
	if err != nil {
		t.Fatalf("wildcard search: %v", err)
	}
	if len(aliases) != 2 {
		t.Fatalf("aliases = %v", aliases)
	}
	if aliases[0].Alias != "red mane" || aliases[0].TagID != 10 {
		t.Errorf("first alias = %+v", aliases[0])
	}
	if aliases[1].Alias != "red tail" || aliases[1].TagID != 11 {
		t.Errorf("second alias = %+v", aliases[1])
	}
}

func TestGetTagInfo(t *testing.T) {
	fs := newFakeStore()
	fs.hashes["medialib:tag:10"] = map[string]string{"name": "red mane", "category": "appearance"}
	repo := New(fs)

	info, err := repo.GetTagInfo(context.Background(), 10)
	if err != nil {
		t.Fatalf("get tag info: %v", err)
	}
	if info.Name != "red mane" || info.Category != "appearance" {
		t.Errorf("info = %+v", info)
	}

	if _, err := repo.GetTagInfo(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
