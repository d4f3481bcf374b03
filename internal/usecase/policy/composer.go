// Package policy derives the mandatory tag groups a permission tier imposes
// on every search. The composer never inspects or merges user-supplied
// groups; its output is concatenated in front of the parsed query, because
// groups AND together.
package policy

import (
	"github.com/medialib/gallerybot/internal/domain/query"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

// Gate is the content-class gate of a command: a single tag that must be
// present (or absent when negated) on every result.
type Gate struct {
	tag     string
	negated bool
}

// IncludeGate gates on the presence of a tag.
func IncludeGate(tag string) Gate { return Gate{tag: tag} }

// ExcludeGate gates on the absence of a tag.
func ExcludeGate(tag string) Gate { return Gate{tag: tag, negated: true} }

// Group returns the gate as a query group.
func (g Gate) Group() query.Group {
	if g.negated {
		return query.Exclude(g.tag)
	}
	return query.Include(g.tag)
}

// Command describes a content-rating command: its gate and the minimum tier
// required to invoke it.
type Command struct {
	name    string
	gate    Gate
	minTier tier.Tier
}

// NewCommand creates a command description.
func NewCommand(name string, gate Gate, minTier tier.Tier) Command {
	return Command{name: name, gate: gate, minTier: minTier}
}

// Name returns the command name.
func (c Command) Name() string { return c.name }

// MinTier returns the minimum tier required to invoke the command.
func (c Command) MinTier() tier.Tier { return c.minTier }

// The content-rating commands the bot serves.
var (
	Safe       = NewCommand("safe", IncludeGate("safe"), tier.Safe)
	Suggestive = NewCommand("suggestive", IncludeGate("suggestive"), tier.Suggestive)
	NSFW       = NewCommand("nsfw", ExcludeGate("safe"), tier.NSFWViewer)
	Explicit   = NewCommand("explicit", IncludeGate("explicit"), tier.NSFWUnrestricted)
)

// Composer injects the mandatory filter groups for a command and tier.
type Composer struct {
	blockedWords     []string
	orientationWords []string
}

// New creates a composer over the configured word lists.
func New(blockedWords, orientationWords []string) *Composer {
	return &Composer{blockedWords: blockedWords, orientationWords: orientationWords}
}

// Compose returns the mandatory groups for a command invoked at the given
// effective tier, in fixed order: the gate group first, then one negated
// single-tag group per blocked word for commands requiring at least the
// NSFW-viewer tier, then one per orientation word once the effective tier
// unlocks orientation-neutral content.
//
// Compose assumes authorization already happened: tiers below the command's
// minimum must be rejected before composing.
func (c *Composer) Compose(cmd Command, effective tier.Tier) []query.Group {
	groups := []query.Group{cmd.gate.Group()}

	if cmd.minTier.AtLeast(tier.NSFWViewer) {
		for _, word := range c.blockedWords {
			groups = append(groups, query.Exclude(word))
		}
	}
	if effective.AtLeast(tier.OrientationUnlock) {
		for _, word := range c.orientationWords {
			groups = append(groups, query.Exclude(word))
		}
	}
	return groups
}
