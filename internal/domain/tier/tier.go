// Package tier defines the ordered permission levels that gate content
// visibility. Higher tiers are strict supersets of lower tiers: the ordering
// only controls which mandatory filter groups get injected, never how a
// query is parsed.
package tier

import "fmt"

// Tier is an integer-backed ordered permission level.
type Tier int

// Permission tiers, lowest to highest.
const (
	Banned Tier = iota
	Safe
	Suggestive
	NSFWViewer
	NSFWUnrestricted
)

// OrientationUnlock is the tier from which orientation-neutral content
// becomes visible, i.e. orientation exclusion groups start being injected.
const OrientationUnlock = NSFWViewer

var names = map[Tier]string{
	Banned:           "banned",
	Safe:             "safe",
	Suggestive:       "suggestive",
	NSFWViewer:       "nsfw_viewer",
	NSFWUnrestricted: "nsfw_unrestricted",
}

// Parse converts a stored tier name back into a Tier.
func Parse(s string) (Tier, error) {
	for t, name := range names {
		if name == s {
			return t, nil
		}
	}
	return Banned, fmt.Errorf("unknown tier %q", s)
}

// String returns the canonical tier name.
func (t Tier) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// IsValid checks if the tier is one of the defined levels.
func (t Tier) IsValid() bool {
	_, ok := names[t]
	return ok
}

// AtLeast reports whether t grants at least the visibility of min.
func (t Tier) AtLeast(min Tier) bool { return t >= min }
