// Package query models boolean tag queries: an ordered list of groups
// combined with AND, where a group is an OR over its tags and a negated
// group is a NOR.
package query

import "strconv"

// Tag is either a tag name or a numeric catalog tag identifier.
type Tag struct {
	name string
	id   int64
	isID bool
}

// Name creates a tag referencing a tag by name.
func Name(name string) Tag { return Tag{name: name} }

// ID creates a tag referencing a tag by catalog identifier.
func ID(id int64) Tag { return Tag{id: id, isID: true} }

// IsID reports whether the tag is a numeric identifier reference.
func (t Tag) IsID() bool { return t.isID }

// TagName returns the tag name; empty for identifier tags.
func (t Tag) TagName() string { return t.name }

// TagID returns the catalog tag identifier; zero for name tags.
func (t Tag) TagID() int64 { return t.id }

// String renders the tag for logging.
func (t Tag) String() string {
	if t.isID {
		return "#" + strconv.FormatInt(t.id, 10)
	}
	return t.name
}

// Group is one clause of a query. A matching catalog entry must carry at
// least one of the group's tags, or none of them when the group is negated.
type Group struct {
	negated bool
	tags    []Tag
}

// NewGroup creates a group over the given tags.
func NewGroup(negated bool, tags ...Tag) Group {
	return Group{negated: negated, tags: tags}
}

// Include creates a non-negated single-tag group.
func Include(name string) Group { return NewGroup(false, Name(name)) }

// Exclude creates a negated single-tag group.
func Exclude(name string) Group { return NewGroup(true, Name(name)) }

// Negated reports whether the group excludes its tags.
func (g Group) Negated() bool { return g.negated }

// Tags returns the group's alternatives in order.
func (g Group) Tags() []Tag { return g.tags }

// IsEmpty reports whether the group carries no tags. Parse never emits
// empty groups.
func (g Group) IsEmpty() bool { return len(g.tags) == 0 }
