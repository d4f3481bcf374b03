// Package uploader serves source-file requests against earlier deliveries:
// the caller names a posting id it received and gets the underlying file
// back as a document. Only the user a post was delivered to may fetch it.
package uploader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/content"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

// Service resolves posting ids back to source files.
type Service struct {
	posts     PostReader
	metadata  MetadataReader
	reps      RepresentationReader
	mediaRoot string
}

// New creates an uploader service.
func New(posts PostReader, metadata MetadataReader, reps RepresentationReader, mediaRoot string) *Service {
	return &Service{posts: posts, metadata: metadata, reps: reps, mediaRoot: mediaRoot}
}

// Best returns the most compatible source file for a posting: the lowest
// level of the representation set, or the primary file itself. Streaming
// manifests are refused with domain.ErrUnsupportedFormat.
func (s *Service) Best(ctx context.Context, caller tier.Tier, userID, postID int64) (string, error) {
	rec, err := s.ownedRecord(ctx, caller, userID, postID)
	if err != nil {
		return "", err
	}

	switch rec.Ext() {
	case ".mpd":
		return "", fmt.Errorf("post %d is a stream manifest: %w", postID, domain.ErrUnsupportedFormat)
	case ".srs":
		reps, err := s.indexedSet(ctx, rec.ID())
		if err != nil {
			return "", err
		}
		return reps[0].FilePath(), nil
	default:
		return filepath.Join(s.mediaRoot, rec.FilePath()), nil
	}
}

// WebP returns the WebP encoding of a posting: the last WebP entry of the
// representation set, or the primary file when it already is one.
// Everything else is domain.ErrUnsupportedFormat.
func (s *Service) WebP(ctx context.Context, caller tier.Tier, userID, postID int64) (string, error) {
	rec, err := s.ownedRecord(ctx, caller, userID, postID)
	if err != nil {
		return "", err
	}

	switch rec.Ext() {
	case ".srs":
		reps, err := s.indexedSet(ctx, rec.ID())
		if err != nil {
			return "", err
		}
		for i := len(reps) - 1; i >= 0; i-- {
			if reps[i].Format() == content.FormatWebP {
				return reps[i].FilePath(), nil
			}
		}
		return "", fmt.Errorf("post %d has no webp representation: %w", postID, domain.ErrUnsupportedFormat)
	case ".webp":
		return filepath.Join(s.mediaRoot, rec.FilePath()), nil
	default:
		return "", fmt.Errorf("post %d is not webp: %w", postID, domain.ErrUnsupportedFormat)
	}
}

// ownedRecord refuses banned callers, loads the posting, enforces
// ownership, and hydrates the content record.
func (s *Service) ownedRecord(ctx context.Context, caller tier.Tier, userID, postID int64) (content.Record, error) {
	if !caller.AtLeast(tier.Safe) {
		return content.Record{}, domain.ErrForbidden
	}
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return content.Record{}, err
	}
	if post.UserID != userID {
		return content.Record{}, domain.ErrNotYourPost
	}

	rec, err := s.metadata.GetMetadata(ctx, post.ContentID)
	if err != nil {
		return content.Record{}, fmt.Errorf("metadata for %d: %w", post.ContentID, err)
	}
	return rec, nil
}

// indexedSet returns a non-empty representation set or domain.ErrNotFound
// when the set was never indexed.
func (s *Service) indexedSet(ctx context.Context, contentID int64) ([]content.Representation, error) {
	reps, err := s.reps.Representations(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("representations for %d: %w", contentID, err)
	}
	if len(reps) == 0 {
		return nil, fmt.Errorf("representation set for %d not indexed: %w", contentID, domain.ErrNotFound)
	}
	return reps, nil
}
