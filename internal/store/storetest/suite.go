package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Users
	userID := "u-" + uuid.New().String()
	fullName := "Test Person"
	u := &model.User{
		UserID:         userID,
		Username:       "user_" + uuid.New().String()[:8],
		DisplayName:    "Tester",
		FullName:       &fullName,
		DateOfBirth:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Sex:            model.SexUnspecified,
		InnerCircleIDs: []string{},
		CreationTime:   base,
	}
	if _, err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	got, err := s.Users().Get(ctx, userID)
	if err != nil || got.UserID != userID || got.FullName == nil || *got.FullName != fullName {
		t.Fatalf("GetUser: got=%+v err=%v", got, err)
	}
	if byName, err := s.Users().GetByUsername(ctx, u.Username); err != nil || byName.UserID != userID {
		t.Fatalf("GetByUsername: got=%+v err=%v", byName, err)
	}
	if _, err := s.Users().Get(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}

	got.StreakCount = 3
	got.LastPostDate = "2026-03-01"
	got.InnerCircleIDs = []string{"a", "b"}
	if upd, err := s.Users().Update(ctx, got); err != nil || upd.StreakCount != 3 || len(upd.InnerCircleIDs) != 2 {
		t.Fatalf("UpdateUser: got=%+v err=%v", upd, err)
	}

	// Posts: ledger order is newest first
	p1 := &model.Post{PostID: uuid.New().String(), AuthorID: userID, AuthorName: "Tester", PhotoURL: "photo://1", MoodID: "calm", CreationTime: base, Reactions: []string{}}
	p2 := &model.Post{PostID: uuid.New().String(), AuthorID: userID, AuthorName: "Tester", PhotoURL: "photo://2", MoodID: "radiant", CreationTime: base.Add(time.Minute), Reactions: []string{}}
	if _, err := s.Posts().Create(ctx, p1); err != nil {
		t.Fatalf("CreatePost p1: %v", err)
	}
	if _, err := s.Posts().Create(ctx, p2); err != nil {
		t.Fatalf("CreatePost p2: %v", err)
	}
	ledger, err := s.Posts().List(ctx)
	if err != nil || len(ledger) < 2 {
		t.Fatalf("ListPosts: n=%d err=%v", len(ledger), err)
	}
	if ledger[0].PostID != p2.PostID {
		t.Fatalf("ledger order: newest first expected, got %s", ledger[0].PostID)
	}
	if upd, err := s.Posts().UpdateReactions(ctx, p1.PostID, []string{"heart", "hug"}); err != nil || len(upd.Reactions) != 2 {
		t.Fatalf("UpdateReactions: got=%+v err=%v", upd, err)
	}
	if _, err := s.Posts().UpdateReactions(ctx, "missing", []string{"heart"}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateReactions missing: want ErrNotFound, got %v", err)
	}

	// Chats: message ordering survives persistence
	chat := &model.SharedChat{
		ChatID:       uuid.New().String(),
		Participants: [2]string{userID, "peer"},
		MoodID:       "calm",
		Messages:     []model.ChatMessage{},
		CreationTime: base,
		ExpiresAt:    base.Add(time.Hour),
	}
	if _, err := s.Chats().Create(ctx, chat); err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	for i, text := range []string{"first", "second", "third"} {
		msg := model.ChatMessage{MessageID: uuid.New().String(), SenderID: userID, Text: text, Timestamp: base.Add(time.Duration(i) * time.Second)}
		if _, err := s.Chats().AppendMessage(ctx, chat.ChatID, msg); err != nil {
			t.Fatalf("AppendMessage %d: %v", i, err)
		}
	}
	stored, err := s.Chats().Get(ctx, chat.ChatID)
	if err != nil || len(stored.Messages) != 3 {
		t.Fatalf("GetChat: got=%+v err=%v", stored, err)
	}
	if stored.Messages[0].Text != "first" || stored.Messages[2].Text != "third" {
		t.Fatalf("message order not preserved: %+v", stored.Messages)
	}
	if !stored.ExpiresAt.Equal(chat.ExpiresAt) {
		t.Fatalf("expiresAt: got=%v want=%v", stored.ExpiresAt, chat.ExpiresAt)
	}
	if lst, err := s.Chats().ListByParticipant(ctx, userID); err != nil || len(lst) != 1 {
		t.Fatalf("ListByParticipant: n=%d err=%v", len(lst), err)
	}

	// Round trip: reloading reproduces identical entities.
	reloaded, err := s.Posts().Get(ctx, p1.PostID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	want, _ := json.Marshal(model.Post{PostID: p1.PostID, AuthorID: p1.AuthorID, AuthorName: p1.AuthorName, PhotoURL: p1.PhotoURL, MoodID: p1.MoodID, CreationTime: p1.CreationTime, Reactions: []string{"heart", "hug"}})
	gotJSON, _ := json.Marshal(reloaded)
	if string(want) != string(gotJSON) {
		t.Fatalf("post round trip mismatch:\n want %s\n got  %s", want, gotJSON)
	}

	// Delete
	if err := s.Users().Delete(ctx, userID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.Users().Delete(ctx, userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteUser twice: want ErrNotFound, got %v", err)
	}
}
