package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/medialib/gallerybot/internal/domain"
	"github.com/medialib/gallerybot/internal/domain/tier"
)

type mockRegistrar struct {
	user    domain.User
	userErr error

	chat      domain.Chat
	chatErr   error
	chatCalls int
}

func (m *mockRegistrar) RegisterUser(_ context.Context, _ int64, _ string) (domain.User, error) {
	return m.user, m.userErr
}

func (m *mockRegistrar) RegisterChat(_ context.Context, _ int64, _ string) (domain.Chat, error) {
	m.chatCalls++
	return m.chat, m.chatErr
}

func TestBegin_PrivateChatSkipsChatRegistration(t *testing.T) {
	reg := &mockRegistrar{user: domain.User{ID: 1, Tier: tier.NSFWViewer}}
	svc := New(reg)

	sess, err := svc.Begin(context.Background(), 1, "alice", 1, "", true)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if reg.chatCalls != 0 {
		t.Errorf("chat registered in a private chat")
	}
	if got := sess.EffectiveTier(); got != tier.NSFWViewer {
		t.Errorf("effective tier = %v, want the user's own tier", got)
	}
}

func TestBegin_GroupChatUsesChatTier(t *testing.T) {
	reg := &mockRegistrar{
		user: domain.User{ID: 1, Tier: tier.NSFWUnrestricted},
		chat: domain.Chat{ID: -100, Tier: tier.Safe},
	}
	svc := New(reg)

	sess, err := svc.Begin(context.Background(), 1, "alice", -100, "group", false)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if reg.chatCalls != 1 {
		t.Errorf("chat registrations = %d, want 1", reg.chatCalls)
	}
	if got := sess.EffectiveTier(); got != tier.Safe {
		t.Errorf("effective tier = %v, want the chat's tier", got)
	}
}

func TestBegin_RegistrationErrors(t *testing.T) {
	svc := New(&mockRegistrar{userErr: errors.New("store down")})
	if _, err := svc.Begin(context.Background(), 1, "a", 2, "t", false); err == nil {
		t.Fatal("expected user registration error")
	}

	svc = New(&mockRegistrar{chatErr: errors.New("store down")})
	if _, err := svc.Begin(context.Background(), 1, "a", 2, "t", false); err == nil {
		t.Fatal("expected chat registration error")
	}
}
