package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/engine"
	"github.com/moodshot/moodshot/internal/model"
)

func newChatService(t *testing.T) (*ChatService, *UserService, *clock.Fake) {
	t.Helper()
	fs := newFakeStore()
	fc := clock.NewFake(testNow)
	return NewChatService(fs, fc), NewUserService(fs, fc), fc
}

func startChat(t *testing.T, csvc *ChatService, usvc *UserService) (*ChatView, *model.User, *model.User) {
	t.Helper()
	a := register(t, usvc, "a", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	b := register(t, usvc, "b", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	v, err := csvc.StartChat(context.Background(), a.UserID, b.UserID, "calm")
	if err != nil {
		t.Fatalf("StartChat: %v", err)
	}
	return v, a, b
}

func TestStartChat_ExpiryAndParticipants(t *testing.T) {
	csvc, usvc, _ := newChatService(t)
	v, a, b := startChat(t, csvc, usvc)

	if v.Chat.Participants != [2]string{a.UserID, b.UserID} {
		t.Fatalf("participants = %v", v.Chat.Participants)
	}
	if want := testNow.Add(engine.ChatTTL); !v.Chat.ExpiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", v.Chat.ExpiresAt, want)
	}
	if v.State.Closed() {
		t.Fatal("fresh chat should be open")
	}
}

func TestStartChat_MissingParticipant(t *testing.T) {
	csvc, usvc, _ := newChatService(t)
	a := register(t, usvc, "a", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	if _, err := csvc.StartChat(context.Background(), a.UserID, "ghost", "calm"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendMessage_QuotasEnforced(t *testing.T) {
	csvc, usvc, _ := newChatService(t)
	v, a, b := startChat(t, csvc, usvc)
	ctx := context.Background()

	for i := 0; i < engine.MaxMessagesPerSender; i++ {
		if _, err := csvc.SendMessage(ctx, v.Chat.ChatID, a.UserID, "hi"); err != nil {
			t.Fatalf("SendMessage %d: %v", i, err)
		}
	}
	if _, err := csvc.SendMessage(ctx, v.Chat.ChatID, a.UserID, "one too many"); !errors.Is(err, model.ErrChatClosed) {
		t.Fatalf("expected ErrChatClosed for sender quota, got %v", err)
	}

	// The other participant can still write until the total cap.
	for i := 0; i < engine.MaxMessagesPerSender; i++ {
		if _, err := csvc.SendMessage(ctx, v.Chat.ChatID, b.UserID, "hello"); err != nil {
			t.Fatalf("SendMessage b %d: %v", i, err)
		}
	}
	if _, err := csvc.SendMessage(ctx, v.Chat.ChatID, b.UserID, "closed now"); !errors.Is(err, model.ErrChatClosed) {
		t.Fatalf("expected ErrChatClosed at total cap, got %v", err)
	}

	got, err := csvc.GetChat(ctx, v.Chat.ChatID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if got.State.Total != engine.MaxMessagesTotal || !got.State.Closed() {
		t.Fatalf("state = %+v, want closed at %d", got.State, engine.MaxMessagesTotal)
	}
}

func TestSendMessage_ExpiredChat(t *testing.T) {
	csvc, usvc, fc := newChatService(t)
	v, a, _ := startChat(t, csvc, usvc)
	ctx := context.Background()

	fc.Advance(engine.ChatTTL)
	if _, err := csvc.SendMessage(ctx, v.Chat.ChatID, a.UserID, "late"); !errors.Is(err, model.ErrChatClosed) {
		t.Fatalf("expected ErrChatClosed at expiry boundary, got %v", err)
	}

	// Expired chats stay readable.
	got, err := csvc.GetChat(ctx, v.Chat.ChatID)
	if err != nil {
		t.Fatalf("GetChat after expiry: %v", err)
	}
	if !got.State.Expired {
		t.Fatal("expected expired state")
	}
}

func TestSendMessage_ForeignSender(t *testing.T) {
	csvc, usvc, _ := newChatService(t)
	v, _, _ := startChat(t, csvc, usvc)
	intruder := register(t, usvc, "z", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	if _, err := csvc.SendMessage(context.Background(), v.Chat.ChatID, intruder.UserID, "hi"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListChats(t *testing.T) {
	csvc, usvc, _ := newChatService(t)
	v, a, _ := startChat(t, csvc, usvc)

	chats, err := csvc.ListChats(context.Background(), a.UserID)
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 1 || chats[0].Chat.ChatID != v.Chat.ChatID {
		t.Fatalf("chats = %+v, want the started chat", chats)
	}
}
