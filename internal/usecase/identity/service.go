// Package identity establishes who is asking: it registers the user (and
// the chat, for group chats) on every update and derives the effective
// permission tier for the rest of the pipeline.
package identity

import (
	"context"
	"fmt"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

// Session is the resolved caller identity for one update.
type Session struct {
	User    domain.User
	Chat    domain.Chat
	Private bool
}

// EffectiveTier is the tier the pipeline authorizes against: the user's own
// tier in private chats, the chat's tier everywhere else.
func (s Session) EffectiveTier() tier.Tier {
	if s.Private {
		return s.User.Tier
	}
	return s.Chat.Tier
}

// Service registers callers and opens sessions.
type Service struct {
	reg Registrar
}

// New creates an identity service.
func New(reg Registrar) *Service {
	return &Service{reg: reg}
}

// Begin registers the sender, and the chat when the update comes from a
// group, then returns the session.
func (s *Service) Begin(ctx context.Context, userID int64, username string, chatID int64, chatTitle string, private bool) (Session, error) {
	u, err := s.reg.RegisterUser(ctx, userID, username)
	if err != nil {
		return Session{}, fmt.Errorf("register user: %w", err)
	}
	if private {
		return Session{User: u, Private: true}, nil
	}

	c, err := s.reg.RegisterChat(ctx, chatID, chatTitle)
	if err != nil {
		return Session{}, fmt.Errorf("register chat: %w", err)
	}
	return Session{User: u, Chat: c}, nil
}
