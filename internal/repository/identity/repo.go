// Package identity persists chat users, group chats, and per-delivery
// posting records.
package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

// store is the consumer interface for identity records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// Repo implements the user/chat registration and posting contracts.
type Repo struct {
	store       store
	defaultTier tier.Tier
}

// New creates an identity repository. Newly seen users and chats start at
// defaultTier.
func New(s store, defaultTier tier.Tier) *Repo {
	return &Repo{store: s, defaultTier: defaultTier}
}

// RegisterUser upserts a user on first contact and returns its record.
// The username is refreshed on every call; the tier is only initialized,
// never overwritten.
func (r *Repo) RegisterUser(ctx context.Context, platformID int64, username string) (domain.User, error) {
	key := userKey(platformID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.User{}, fmt.Errorf("hgetall user %d: %w", platformID, err)
	}

	t := r.defaultTier
	if stored, ok := fields["tier"]; ok {
		if t, err = tier.Parse(stored); err != nil {
			return domain.User{}, fmt.Errorf("user %d: %w", platformID, err)
		}
	}

	update := map[string]string{"username": username}
	if _, ok := fields["tier"]; !ok {
		update["tier"] = t.String()
	}
	if err := r.store.HSet(ctx, key, update); err != nil {
		return domain.User{}, fmt.Errorf("hset user %d: %w", platformID, err)
	}

	return domain.User{ID: platformID, PlatformID: platformID, Username: username, Tier: t}, nil
}

// RegisterChat upserts a group chat on first contact and returns its record.
func (r *Repo) RegisterChat(ctx context.Context, chatID int64, title string) (domain.Chat, error) {
	key := chatKey(chatID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("hgetall chat %d: %w", chatID, err)
	}

	t := r.defaultTier
	if stored, ok := fields["tier"]; ok {
		if t, err = tier.Parse(stored); err != nil {
			return domain.Chat{}, fmt.Errorf("chat %d: %w", chatID, err)
		}
	}

	update := map[string]string{"title": title}
	if _, ok := fields["tier"]; !ok {
		update["tier"] = t.String()
	}
	if err := r.store.HSet(ctx, key, update); err != nil {
		return domain.Chat{}, fmt.Errorf("hset chat %d: %w", chatID, err)
	}

	return domain.Chat{ID: chatID, Title: title, Tier: t}, nil
}

// RegisterPost records a delivery and returns its posting id.
func (r *Repo) RegisterPost(ctx context.Context, userID, contentID int64) (int64, error) {
	postID, err := r.store.Incr(ctx, domain.KeyPrefix+"seq:post")
	if err != nil {
		return 0, fmt.Errorf("next post id: %w", err)
	}
	fields := map[string]string{
		"user_id":    strconv.FormatInt(userID, 10),
		"content_id": strconv.FormatInt(contentID, 10),
	}
	if err := r.store.HSet(ctx, postKey(postID), fields); err != nil {
		return 0, fmt.Errorf("hset post %d: %w", postID, err)
	}
	return postID, nil
}

// GetPost returns a posting record by id.
func (r *Repo) GetPost(ctx context.Context, postID int64) (domain.Post, error) {
	fields, err := r.store.HGetAll(ctx, postKey(postID))
	if err != nil {
		return domain.Post{}, fmt.Errorf("hgetall post %d: %w", postID, err)
	}
	if len(fields) == 0 {
		return domain.Post{}, domain.ErrPostNotFound
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return domain.Post{}, fmt.Errorf("post %d: malformed user_id: %w", postID, err)
	}
	contentID, err := strconv.ParseInt(fields["content_id"], 10, 64)
	if err != nil {
		return domain.Post{}, fmt.Errorf("post %d: malformed content_id: %w", postID, err)
	}
	return domain.Post{ID: postID, UserID: userID, ContentID: contentID}, nil
}

func userKey(platformID int64) string {
	return fmt.Sprintf("%suser:%d", domain.KeyPrefix, platformID)
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("%schat:%d", domain.KeyPrefix, chatID)
}

func postKey(postID int64) string {
	return fmt.Sprintf("%spost:%d", domain.KeyPrefix, postID)
}
