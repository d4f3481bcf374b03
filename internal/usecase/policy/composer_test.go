package policy

import (
	"testing"

	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

var (
	blocked     = []string{"blood", "gore"}
	orientation = []string{"bisexual", "gay", "lesbian", "solo male"}
)

func TestCompose_LowestTierOnlyGate(t *testing.T) {
	c := New(blocked, orientation)

	groups := c.Compose(Safe, tier.Safe)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want only the gate: %v", len(groups), groups)
	}
	gate := groups[0]
	if gate.Negated() || len(gate.Tags()) != 1 || gate.Tags()[0] != query.Name("safe") {
		t.Errorf("unexpected gate group: %v", gate)
	}
}

func TestCompose_HighestTierAllExclusionsOnceEach(t *testing.T) {
	c := New(blocked, orientation)

	groups := c.Compose(NSFW, tier.NSFWUnrestricted)
	want := 1 + len(blocked) + len(orientation)
	if len(groups) != want {
		t.Fatalf("got %d groups, want %d", len(groups), want)
	}

	// Gate first: excluded safety tag for the nsfw command.
	if !groups[0].Negated() || groups[0].Tags()[0] != query.Name("safe") {
		t.Errorf("gate group = %v, want negated [safe]", groups[0])
	}

	seen := map[string]int{}
	for _, g := range groups[1:] {
		if !g.Negated() {
			t.Errorf("exclusion group not negated: %v", g)
		}
		if len(g.Tags()) != 1 {
			t.Errorf("exclusion group not single-tag: %v", g)
		}
		seen[g.Tags()[0].TagName()]++
	}
	for _, word := range append(append([]string{}, blocked...), orientation...) {
		if seen[word] != 1 {
			t.Errorf("word %q appears %d times, want exactly once", word, seen[word])
		}
	}
}

func TestCompose_BlockedWordsFollowCommandMinimum(t *testing.T) {
	c := New(blocked, orientation)

	// Suggestive requires a tier below NSFW-viewer: no blocked-word groups.
	groups := c.Compose(Suggestive, tier.Suggestive)
	if len(groups) != 1 {
		t.Fatalf("suggestive at suggestive tier: got %d groups, want 1", len(groups))
	}

	// Explicit requires the highest tier: blocked words always present.
	groups = c.Compose(Explicit, tier.NSFWUnrestricted)
	if len(groups) != 1+len(blocked)+len(orientation) {
		t.Fatalf("explicit at highest tier: got %d groups", len(groups))
	}
}

func TestCompose_OrientationFollowsEffectiveTier(t *testing.T) {
	c := New(blocked, orientation)

	// NSFW command at exactly the viewer tier: blocked words yes,
	// orientation exclusions yes (viewer is the unlock tier).
	groups := c.Compose(NSFW, tier.NSFWViewer)
	if len(groups) != 1+len(blocked)+len(orientation) {
		t.Fatalf("got %d groups, want %d", len(groups), 1+len(blocked)+len(orientation))
	}

	// Suggestive command at suggestive tier: neither list applies.
	groups = c.Compose(Suggestive, tier.Suggestive)
	for _, g := range groups[1:] {
		t.Errorf("unexpected exclusion group: %v", g)
	}
}

func TestCompose_OrderIsGateBlockedOrientation(t *testing.T) {
	c := New([]string{"b1"}, []string{"o1"})

	groups := c.Compose(Explicit, tier.NSFWUnrestricted)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].Tags()[0] != query.Name("explicit") {
		t.Errorf("gate not first: %v", groups[0])
	}
	if groups[1].Tags()[0] != query.Name("b1") {
		t.Errorf("blocked word not second: %v", groups[1])
	}
	if groups[2].Tags()[0] != query.Name("o1") {
		t.Errorf("orientation word not third: %v", groups[2])
	}
}
