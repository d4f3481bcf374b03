package catalog

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/medialib/gallerybot/internal/db"
)

// fakeStore emulates the set algebra and lookups the repository drives, so
// tests assert on observable results instead of command sequences.
type fakeStore struct {
	sets   map[string]map[string]struct{}
	hashes map[string]map[string]string
	kv     map[string][]byte

	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sets:   map[string]map[string]struct{}{},
		hashes: map[string]map[string]string{},
		kv:     map[string][]byte{},
	}
}

func (f *fakeStore) seedSet(key string, members ...string) {
	s := map[string]struct{}{}
	for _, m := range members {
		s[m] = struct{}{}
	}
	f.sets[key] = s
}

func (f *fakeStore) SUnionStore(_ context.Context, dst string, keys ...string) error {
	out := map[string]struct{}{}
	for _, k := range keys {
		for m := range f.sets[k] {
			out[m] = struct{}{}
		}
	}
	f.sets[dst] = out
	return nil
}

func (f *fakeStore) SInterStore(_ context.Context, dst string, keys ...string) error {
	out := map[string]struct{}{}
	if len(keys) > 0 {
		for m := range f.sets[keys[0]] {
			in := true
			for _, k := range keys[1:] {
				if _, ok := f.sets[k][m]; !ok {
					in = false
					break
				}
			}
			if in {
				out[m] = struct{}{}
			}
		}
	}
	f.sets[dst] = out
	return nil
}

func (f *fakeStore) SDiffStore(_ context.Context, dst string, keys ...string) error {
	out := map[string]struct{}{}
	if len(keys) > 0 {
		for m := range f.sets[keys[0]] {
			excluded := false
			for _, k := range keys[1:] {
				if _, ok := f.sets[k][m]; ok {
					excluded = true
					break
				}
			}
			if !excluded {
				out[m] = struct{}{}
			}
		}
	}
	f.sets[dst] = out
	return nil
}

// SRandMember returns members in sorted order so tests are deterministic.
func (f *fakeStore) SRandMember(_ context.Context, key string, count int) ([]string, error) {
	members := make([]string, 0, len(f.sets[key]))
	for m := range f.sets[key] {
		members = append(members, m)
	}
	sort.Strings(members)
	if count < len(members) {
		members = members[:count]
	}
	return members, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.sets, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	fields, ok := f.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	return fields, nil
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) Scan(_ context.Context, pattern string) ([]string, error) {
	var keys []string
	for k := range f.kv {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// leakedTemps returns temp keys still present after a search.
func (f *fakeStore) leakedTemps() []string {
	var leaked []string
	for k := range f.sets {
		if strings.Contains(k, ":tmp:") {
			leaked = append(leaked, k)
		}
	}
	return leaked
}
