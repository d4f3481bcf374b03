package domain

import "github.com/medialib/gallerybot/internal/domain/tier"

// User is a registered chat user with an assigned permission tier.
type User struct {
	ID         int64
	PlatformID int64
	Username   string
	Tier       tier.Tier
}

// Chat is a registered group chat with its own permission tier. In group
// chats the chat tier, not the member's, decides what is visible.
type Chat struct {
	ID    int64
	Title string
	Tier  tier.Tier
}

// Post is a per-delivery record tying a delivered content entry to the user
// it was delivered to. Its ID is what /best and /webp accept.
type Post struct {
	ID        int64
	UserID    int64
	ContentID int64
}

// TagAlias is one alias hit of a wildcard tag search.
type TagAlias struct {
	Alias string
	TagID int64
}

// TagInfo describes a catalog tag.
type TagInfo struct {
	ID       int64
	Name     string
	Category string
}
