// Package representation persists per-content representation sets with
// cache-once semantics: a set is built from its .srs descriptor on first
// access and never recomputed afterwards.
package representation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/medialib/gallerybot/internal/db"
	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/content"
)

// store is the consumer interface for representation sets (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/resolver.RepresentationStore.
type Repo struct {
	store store
}

// New creates a representation repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

type reprDTO struct {
	Level    int    `json:"level"`
	Format   string `json:"format"`
	FilePath string `json:"file_path"`
}

// Representations returns the cached set for a content id, ordered by
// ascending compatibility level. A never-built set yields an empty slice,
// not an error.
func (r *Repo) Representations(ctx context.Context, contentID int64) ([]content.Representation, error) {
	raw, err := r.store.Get(ctx, reprKey(contentID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get representations %d: %w", contentID, err)
	}

	var dtos []reprDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal representations %d: %w", contentID, err)
	}

	reps := make([]content.Representation, 0, len(dtos))
	for _, d := range dtos {
		reps = append(reps, content.NewRepresentation(d.Level, d.Format, d.FilePath))
	}
	sort.SliceStable(reps, func(i, j int) bool {
		return reps[i].CompatibilityLevel() < reps[j].CompatibilityLevel()
	})
	return reps, nil
}

// descriptor is the on-disk .srs set descriptor: alternative encodings of
// one image keyed by compatibility level, paths relative to the descriptor.
type descriptor struct {
	Streams struct {
		Image struct {
			Levels map[string]string `json:"levels"`
		} `json:"image"`
	} `json:"streams"`
}

// BuildRepresentations indexes a .srs descriptor and persists the resulting
// set. The write is a plain upsert: two concurrent builds for the same id
// produce the same value, so the race is harmless.
func (r *Repo) BuildRepresentations(ctx context.Context, contentID int64, descriptorPath string) error {
	raw, err := os.ReadFile(descriptorPath)
	if err != nil {
		return fmt.Errorf("read descriptor %s: %w", descriptorPath, err)
	}

	var desc descriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return fmt.Errorf("parse descriptor %s: %w", descriptorPath, err)
	}

	dir := filepath.Dir(descriptorPath)
	dtos := make([]reprDTO, 0, len(desc.Streams.Image.Levels))
	for levelStr, rel := range desc.Streams.Image.Levels {
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			return fmt.Errorf("descriptor %s: bad level %q: %w", descriptorPath, levelStr, err)
		}
		dtos = append(dtos, reprDTO{
			Level:    level,
			Format:   formatFromPath(rel),
			FilePath: filepath.Join(dir, rel),
		})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Level < dtos[j].Level })

	data, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("marshal representations %d: %w", contentID, err)
	}
	if err := r.store.Set(ctx, reprKey(contentID), data); err != nil {
		return fmt.Errorf("persist representations %d: %w", contentID, err)
	}
	return nil
}

func formatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func reprKey(contentID int64) string {
	return fmt.Sprintf("%srepr:%d", domain.KeyPrefix, contentID)
}
