package identity

import (
	"context"

	"github.com/medialib/gallerybot/internal/domain"
)

// Registrar upserts users and chats on first contact.
type Registrar interface {
	RegisterUser(ctx context.Context, platformID int64, username string) (domain.User, error)
	RegisterChat(ctx context.Context, chatID int64, title string) (domain.Chat, error)
}
