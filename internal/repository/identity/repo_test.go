package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

type mockStore struct {
	hashes   map[string]map[string]string
	counters map[string]int64
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes:   map[string]map[string]string{},
		counters: map[string]int64{},
	}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	fields, ok := m.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	return fields, nil
}

func (m *mockStore) Incr(_ context.Context, key string) (int64, error) {
	m.counters[key]++
	return m.counters[key], nil
}

func TestRegisterUser_FirstContactGetsDefaultTier(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, tier.Safe)

	u, err := repo.RegisterUser(context.Background(), 100, "alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Tier != tier.Safe || u.Username != "alice" {
		t.Errorf("user = %+v", u)
	}
	if ms.hashes["medialib:user:100"]["tier"] != tier.Safe.String() {
		t.Errorf("stored = %v", ms.hashes["medialib:user:100"])
	}
}

func TestRegisterUser_TierNeverOverwritten(t *testing.T) {
	ms := newMockStore()
	ms.hashes["medialib:user:100"] = map[string]string{
		"username": "old",
		"tier":     tier.NSFWUnrestricted.String(),
	}
	repo := New(ms, tier.Safe)

	u, err := repo.RegisterUser(context.Background(), 100, "renamed")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Tier != tier.NSFWUnrestricted {
		t.Errorf("tier = %v, want the stored tier", u.Tier)
	}
	stored := ms.hashes["medialib:user:100"]
	if stored["username"] != "renamed" {
		t.Errorf("username not refreshed: %v", stored)
	}
	if stored["tier"] != tier.NSFWUnrestricted.String() {
		t.Errorf("tier overwritten: %v", stored)
	}
}

func TestRegisterUser_MalformedStoredTier(t *testing.T) {
	ms := newMockStore()
	ms.hashes["medialib:user:100"] = map[string]string{"tier": "sudo"}
	repo := New(ms, tier.Safe)

	if _, err := repo.RegisterUser(context.Background(), 100, "a"); err == nil {
		t.Fatal("expected error for an unparseable tier")
	}
}

func TestRegisterChat(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, tier.Safe)

	c, err := repo.RegisterChat(context.Background(), -100, "lounge")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Tier != tier.Safe || c.Title != "lounge" {
		t.Errorf("chat = %+v", c)
	}
}

func TestRegisterPost_SequentialIDs(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, tier.Safe)

	first, err := repo.RegisterPost(context.Background(), 100, 42)
	if err != nil {
		t.Fatalf("register post: %v", err)
	}
	second, err := repo.RegisterPost(context.Background(), 100, 43)
	if err != nil {
		t.Fatalf("register post: %v", err)
	}
	if first != 1 || second != 2 {
		t.Errorf("ids = %d, %d", first, second)
	}
}

func TestGetPost_RoundTrip(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, tier.Safe)

	id, err := repo.RegisterPost(context.Background(), 100, 42)
	if err != nil {
		t.Fatalf("register post: %v", err)
	}

	p, err := repo.GetPost(context.Background(), id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if p.UserID != 100 || p.ContentID != 42 || p.ID != id {
		t.Errorf("post = %+v", p)
	}
}

func TestGetPost_Unknown(t *testing.T) {
	repo := New(newMockStore(), tier.Safe)
	if _, err := repo.GetPost(context.Background(), 999); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}
