package query

import (
	"strconv"
	"strings"
)

// Parse turns a free-text tag expression into an ordered list of groups.
//
// Tokens are separated by single spaces. The keyword "and" (any case)
// flushes the current group and starts a new one; "not" marks the current
// group negated until it is flushed. Any other token is a tag: underscores
// recover spaces in multi-word tag names, and all-digit tokens are catalog
// tag identifiers rather than names.
//
// Parsing is pure and total. Malformed input degrades to fewer groups,
// never an error: consecutive separators, a trailing "not" with no tag,
// and whitespace-only input all collapse to nothing.
func Parse(raw string) []Group {
	var groups []Group
	current := Group{}
	for _, token := range strings.Split(raw, " ") {
		switch {
		case strings.EqualFold(token, "and"):
			if !current.IsEmpty() {
				groups = append(groups, current)
				current = Group{}
			}
		case strings.EqualFold(token, "not"):
			current.negated = true
		case token != "":
			current.tags = append(current.tags, parseTag(token))
		}
	}
	if !current.IsEmpty() {
		groups = append(groups, current)
	}
	return groups
}

func parseTag(token string) Tag {
	name := strings.ReplaceAll(token, "_", " ")
	if id, err := strconv.ParseInt(name, 10, 64); err == nil && isAllDigits(name) {
		return ID(id)
	}
	return Name(name)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
