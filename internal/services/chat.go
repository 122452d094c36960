package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/engine"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/store"
)

// ChatService handles ephemeral two-party chats spawned from resonance
// matches. Closure is never stored; it is derived on every access.
type ChatService struct {
	store store.Store
	clock clock.Clock
}

func NewChatService(s store.Store, c clock.Clock) *ChatService {
	return &ChatService{store: s, clock: c}
}

// ChatView pairs a chat with its derived quota state at read time.
type ChatView struct {
	Chat  model.SharedChat `json:"chat"`
	State engine.ChatState `json:"state"`
}

// StartChat opens a chat between two existing users.
func (s *ChatService) StartChat(ctx context.Context, initiatorID, targetID, moodID string) (*ChatView, error) {
	if _, err := s.store.Users().Get(ctx, initiatorID); err != nil {
		return nil, err
	}
	if _, err := s.store.Users().Get(ctx, targetID); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	chat, err := engine.NewChat(uuid.New().String(), initiatorID, targetID, moodID, now)
	if err != nil {
		return nil, err
	}
	saved, err := s.store.Chats().Create(ctx, &chat)
	if err != nil {
		return nil, err
	}
	return &ChatView{Chat: *saved, State: engine.StateOf(*saved, now)}, nil
}

// GetChat returns the chat and its quota state. Expired chats stay readable.
func (s *ChatService) GetChat(ctx context.Context, chatID string) (*ChatView, error) {
	c, err := s.store.Chats().Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return &ChatView{Chat: *c, State: engine.StateOf(*c, s.clock.Now())}, nil
}

// ListChats returns every chat userID participates in, newest first.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]*ChatView, error) {
	cs, err := s.store.Chats().ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	out := make([]*ChatView, 0, len(cs))
	for _, c := range cs {
		out = append(out, &ChatView{Chat: *c, State: engine.StateOf(*c, now)})
	}
	return out, nil
}

// SendMessage appends one message after quota and closure checks.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, text string) (*ChatView, error) {
	c, err := s.store.Chats().Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	_, msg, err := engine.AppendMessage(*c, uuid.New().String(), senderID, text, now)
	if err != nil {
		return nil, err
	}
	saved, err := s.store.Chats().AppendMessage(ctx, chatID, msg)
	if err != nil {
		return nil, err
	}
	return &ChatView{Chat: *saved, State: engine.StateOf(*saved, now)}, nil
}
