// Package content holds the catalog-owned value objects the pipeline reads:
// content records, representation sets, and the deliverable produced by
// resolution.
package content

import (
	"path/filepath"
	"strings"
)

// Record is an opaque catalog entry. The pipeline only reads it.
type Record struct {
	id          int64
	filePath    string
	title       string
	description string
	originName  string
	originID    int64
	hasOrigin   bool
}

// Reconstruct creates a Record from storage hydration.
func Reconstruct(id int64, filePath, title, description, originName string, originID int64, hasOrigin bool) Record {
	return Record{
		id:          id,
		filePath:    filePath,
		title:       title,
		description: description,
		originName:  originName,
		originID:    originID,
		hasOrigin:   hasOrigin,
	}
}

// ID returns the stable catalog identifier.
func (r Record) ID() int64 { return r.id }

// FilePath returns the primary file path relative to the media root.
func (r Record) FilePath() string { return r.filePath }

// Title returns the optional title; empty when absent.
func (r Record) Title() string { return r.title }

// Description returns the optional description; empty when absent.
func (r Record) Description() string { return r.description }

// Origin returns the origin-site name and numeric id. ok is false unless
// both are present.
func (r Record) Origin() (name string, id int64, ok bool) {
	return r.originName, r.originID, r.hasOrigin
}

// Ext returns the lowercased extension of the primary file.
func (r Record) Ext() string {
	return strings.ToLower(filepath.Ext(r.filePath))
}

// Representation is one alternative encoding of a piece of content.
type Representation struct {
	level    int
	format   string
	filePath string
}

// NewRepresentation creates a representation entry.
func NewRepresentation(level int, format, filePath string) Representation {
	return Representation{level: level, format: format, filePath: filePath}
}

// CompatibilityLevel returns the ordinal; lowest = most universally viewable.
func (r Representation) CompatibilityLevel() int { return r.level }

// Format returns the encoding format name, e.g. "webp".
func (r Representation) Format() string { return r.format }

// FilePath returns the representation's file path.
func (r Representation) FilePath() string { return r.filePath }

// FormatWebP is the efficient target format of the pipeline.
const FormatWebP = "webp"

// Deliverable is the concrete image handed to the transport: either an
// in-memory re-encoded buffer or a reference to an existing file. The zero
// value means "no image".
type Deliverable struct {
	data []byte
	path string
}

// FileDeliverable references an existing file on disk.
func FileDeliverable(path string) Deliverable { return Deliverable{path: path} }

// BufferDeliverable wraps re-encoded bytes. A zero-length buffer yields the
// zero Deliverable, guarding against silent encoder failure.
func BufferDeliverable(data []byte) Deliverable {
	if len(data) == 0 {
		return Deliverable{}
	}
	return Deliverable{data: data}
}

// IsZero reports whether no image could be produced.
func (d Deliverable) IsZero() bool { return d.path == "" && len(d.data) == 0 }

// IsFile reports whether the deliverable is a file reference.
func (d Deliverable) IsFile() bool { return d.path != "" }

// Path returns the file path for file deliverables.
func (d Deliverable) Path() string { return d.path }

// Data returns the encoded bytes for buffer deliverables.
func (d Deliverable) Data() []byte { return d.data }
