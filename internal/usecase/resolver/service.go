// Package resolver turns a catalog record into something a chat transport
// can send: a concrete image deliverable plus a caption. Every failure on
// the way degrades to a smaller answer (a text-only caption at worst);
// nothing here is fatal.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/content"
	"github.com/medialib/gallerybot/internal/logger"
	"github.com/medialib/gallerybot/internal/metrics"
)

// Config carries the resolution knobs.
type Config struct {
	// MediaRoot is prepended to the catalog's relative file paths.
	MediaRoot string
	// DescriptionLimit is the rune count above which a description is
	// replaced with a fixed notice.
	DescriptionLimit int
	// OriginURLTemplates maps origin-site names to fmt templates taking
	// the numeric origin id.
	OriginURLTemplates map[string]string
}

// Service resolves records into deliverables and assembles captions.
type Service struct {
	reps  RepresentationStore
	codec Codec
	cfg   Config
}

// New creates a resolver service.
func New(reps RepresentationStore, codec Codec, cfg Config) *Service {
	return &Service{reps: reps, codec: codec, cfg: cfg}
}

// Resolve picks the best sendable encoding for a record and builds the
// caption. The returned deliverable is zero when no image can be produced;
// the caption is always usable on its own.
func (s *Service) Resolve(ctx context.Context, rec content.Record, postID int64) (content.Deliverable, string) {
	log := logger.FromContext(ctx).With(zap.Int64("content_id", rec.ID()))
	start := time.Now()

	lines := s.captionHeader(rec, log)
	primary := filepath.Join(s.cfg.MediaRoot, rec.FilePath())

	var img content.Deliverable
	if rec.Ext() == ".srs" {
		var setLines []string
		img, setLines = s.resolveSet(ctx, rec.ID(), primary, log)
		lines = append(lines, setLines...)
	} else {
		img = s.resolveFile(primary, log)
	}

	lines = append(lines, fmt.Sprintf("Post ID: %d", postID))

	metrics.ObserveResolve(deliverableKind(img), time.Since(start))
	return img, strings.Join(lines, "\n")
}

// resolveSet handles a representation-set descriptor: build the cached set
// on first access, describe it in the caption, then deliver the highest
// level directly when it is already WebP or run the lowest level through
// the per-format rules otherwise.
func (s *Service) resolveSet(ctx context.Context, contentID int64, descriptorPath string, log *zap.Logger) (content.Deliverable, []string) {
	reps, err := s.reps.Representations(ctx, contentID)
	if err != nil {
		log.Warn("read representation set", zap.Error(err))
		return content.Deliverable{}, nil
	}
	if len(reps) == 0 {
		if err := s.reps.BuildRepresentations(ctx, contentID, descriptorPath); err != nil {
			log.Warn("index representation set", zap.String("descriptor", descriptorPath), zap.Error(err))
			return content.Deliverable{}, nil
		}
		if reps, err = s.reps.Representations(ctx, contentID); err != nil {
			log.Warn("read representation set after indexing", zap.Error(err))
			return content.Deliverable{}, nil
		}
	}
	if len(reps) == 0 {
		log.Warn("representation set is empty", zap.String("descriptor", descriptorPath))
		return content.Deliverable{}, nil
	}

	lines := make([]string, 0, len(reps)+1)
	lines = append(lines, "Representations:")
	for _, rep := range reps {
		lines = append(lines, fmt.Sprintf("level %d — %s", rep.CompatibilityLevel(), rep.Format()))
	}

	if last := reps[len(reps)-1]; last.Format() == content.FormatWebP {
		return content.FileDeliverable(last.FilePath()), lines
	}
	return s.resolveFile(reps[0].FilePath(), log), lines
}

// resolveFile applies the per-format delivery rules to a concrete file.
func (s *Service) resolveFile(path string, log *zap.Logger) content.Deliverable {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return content.FileDeliverable(path)
	case ".avif":
		// Chat clients cannot render AVIF and the decoder stack cannot
		// read it, so the post goes out caption-only.
		log.Debug("avif content delivered without image", zap.String("path", path))
		return content.Deliverable{}
	case ".jpg", ".jpeg":
		variant, err := s.codec.ProbeArithmetic(path)
		switch {
		case errors.Is(err, domain.ErrUnsupportedFormat):
			log.Warn("jpeg extension on a non-jpeg file", zap.String("path", path))
			return content.Deliverable{}
		case err != nil:
			// A JPEG too malformed to probe is treated like the
			// arithmetic variant and re-encoded.
			log.Warn("jpeg probe failed", zap.String("path", path), zap.Error(err))
			variant = true
		}
		if !variant {
			return content.FileDeliverable(path)
		}
		return s.transcode(path, log)
	default:
		return s.transcode(path, log)
	}
}

func (s *Service) transcode(path string, log *zap.Logger) content.Deliverable {
	data, err := s.codec.Transcode(path)
	if err != nil {
		metrics.TranscodeResult("error")
		log.Warn("transcode failed", zap.String("path", path), zap.Error(err))
		return content.Deliverable{}
	}
	d := content.BufferDeliverable(data)
	if d.IsZero() {
		metrics.TranscodeResult("empty")
		log.Warn("transcode produced an empty buffer", zap.String("path", path))
		return d
	}
	metrics.TranscodeResult("ok")
	return d
}

// captionHeader builds the metadata lines preceding any representation
// lines: title, description (or the too-long notice), source link.
func (s *Service) captionHeader(rec content.Record, log *zap.Logger) []string {
	var lines []string
	if t := rec.Title(); t != "" {
		lines = append(lines, "Title: "+t)
	}
	if d := rec.Description(); d != "" {
		if len([]rune(d)) < s.cfg.DescriptionLimit {
			lines = append(lines, "Description: "+d)
		} else {
			lines = append(lines, "Description is too long.")
		}
	}
	if name, id, ok := rec.Origin(); ok {
		if tmpl, known := s.cfg.OriginURLTemplates[name]; known {
			lines = append(lines, "Source: "+fmt.Sprintf(tmpl, id))
		} else {
			log.Warn("unknown origin site", zap.String("origin", name))
		}
	}
	return lines
}

func deliverableKind(d content.Deliverable) string {
	switch {
	case d.IsFile():
		return "file"
	case !d.IsZero():
		return "buffer"
	default:
		return "none"
	}
}
