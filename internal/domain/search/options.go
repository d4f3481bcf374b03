// Package search defines the option vocabulary of the catalog search
// capability.
package search

// Order is the result ordering mode.
type Order string

// Ordering modes. Random is the only mode the pipeline exercises.
const (
	Random Order = "random"
)

// HiddenFiltering controls whether soft-deleted entries are visible.
type HiddenFiltering string

// Hidden filtering modes.
const (
	// Filter excludes hidden entries.
	Filter HiddenFiltering = "filter"
	// Show includes hidden entries.
	Show HiddenFiltering = "show"
)
