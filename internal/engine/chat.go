package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/moodshot/moodshot/internal/model"
)

const (
	// ChatTTL is the fixed lifetime of an ephemeral chat.
	ChatTTL = time.Hour

	// MaxMessagesPerSender caps how many messages one participant may send.
	MaxMessagesPerSender = 10

	// MaxMessagesTotal caps the combined message count of a chat.
	MaxMessagesTotal = 20
)

// ChatState is the derived quota/closure view of a chat. Closure is never
// persisted; it is re-evaluated from the message list and expiry on every
// write attempt and read-for-display.
type ChatState struct {
	Expired      bool           `json:"expired"`
	TotalClosed  bool           `json:"totalClosed"`
	Total        int            `json:"total"`
	SenderCounts map[string]int `json:"senderCounts"`
}

// Closed reports whether the chat rejects all writes regardless of sender.
func (s ChatState) Closed() bool { return s.Expired || s.TotalClosed }

// ClosedFor reports whether senderID specifically may no longer write.
func (s ChatState) ClosedFor(senderID string) bool {
	return s.Closed() || s.SenderCounts[senderID] >= MaxMessagesPerSender
}

// StateOf derives the chat's quota state at now.
func StateOf(c model.SharedChat, now time.Time) ChatState {
	st := ChatState{
		Expired:      !now.Before(c.ExpiresAt),
		Total:        len(c.Messages),
		SenderCounts: make(map[string]int, 2),
	}
	for _, m := range c.Messages {
		st.SenderCounts[m.SenderID]++
	}
	st.TotalClosed = st.Total >= MaxMessagesTotal
	return st
}

// NewChat builds a chat between two distinct participants with
// expiresAt = now + ChatTTL. The caller assigns the chat id.
func NewChat(chatID, initiatorID, targetID, moodID string, now time.Time) (model.SharedChat, error) {
	if initiatorID == "" || targetID == "" {
		return model.SharedChat{}, fmt.Errorf("%w: both participant ids are required", model.ErrValidation)
	}
	if initiatorID == targetID {
		return model.SharedChat{}, fmt.Errorf("%w: chat requires two distinct participants", model.ErrValidation)
	}
	return model.SharedChat{
		ChatID:       chatID,
		Participants: [2]string{initiatorID, targetID},
		MoodID:       moodID,
		CreationTime: now,
		ExpiresAt:    now.Add(ChatTTL),
	}, nil
}

// IsParticipant reports whether userID is one of the chat's two participants.
func IsParticipant(c model.SharedChat, userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// AppendMessage validates and appends one message, returning the updated chat
// and the stored message. Rejections: empty text after trimming and foreign
// senders with ErrValidation; an expired chat, a sender at the per-sender cap,
// or a chat at the total cap with ErrChatClosed. The input chat is not
// mutated.
func AppendMessage(c model.SharedChat, messageID, senderID, text string, now time.Time) (model.SharedChat, model.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return c, model.ChatMessage{}, fmt.Errorf("%w: message text is empty", model.ErrValidation)
	}
	if !IsParticipant(c, senderID) {
		return c, model.ChatMessage{}, fmt.Errorf("%w: sender %s is not a participant", model.ErrValidation, senderID)
	}

	st := StateOf(c, now)
	switch {
	case st.Expired:
		return c, model.ChatMessage{}, fmt.Errorf("%w: chat expired", model.ErrChatClosed)
	case st.TotalClosed:
		return c, model.ChatMessage{}, fmt.Errorf("%w: chat reached %d messages", model.ErrChatClosed, MaxMessagesTotal)
	case st.SenderCounts[senderID] >= MaxMessagesPerSender:
		return c, model.ChatMessage{}, fmt.Errorf("%w: sender reached %d messages", model.ErrChatClosed, MaxMessagesPerSender)
	}

	msg := model.ChatMessage{
		MessageID: messageID,
		SenderID:  senderID,
		Text:      trimmed,
		Timestamp: now,
	}
	msgs := make([]model.ChatMessage, 0, len(c.Messages)+1)
	msgs = append(msgs, c.Messages...)
	msgs = append(msgs, msg)
	c.Messages = msgs
	return c, msg, nil
}
