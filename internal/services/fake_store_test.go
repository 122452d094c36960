package services

import (
	"context"
	"fmt"

	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/store"
)

// fakeStore is an in-memory store.Store for service tests. Posts are kept in
// insertion order and listed newest first, matching the driver adapters.
type fakeStore struct {
	users map[string]*model.User
	posts []*model.Post
	chats map[string]*model.SharedChat
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*model.User{},
		chats: map[string]*model.SharedChat{},
	}
}

func (f *fakeStore) Users() store.Users { return &fakeUsers{f} }
func (f *fakeStore) Posts() store.Posts { return &fakePosts{f} }
func (f *fakeStore) Chats() store.Chats { return &fakeChats{f} }

type fakeUsers struct{ p *fakeStore }

func (u *fakeUsers) Create(_ context.Context, m *model.User) (*model.User, error) {
	for _, ex := range u.p.users {
		if ex.Username == m.Username {
			return nil, fmt.Errorf("%w: username %q taken", model.ErrConflict, m.Username)
		}
	}
	cp := *m
	u.p.users[cp.UserID] = &cp
	return &cp, nil
}

func (u *fakeUsers) Get(_ context.Context, userID string) (*model.User, error) {
	m, ok := u.p.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (u *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, m := range u.p.users {
		if m.Username == username {
			cp := *m
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (u *fakeUsers) Update(_ context.Context, m *model.User) (*model.User, error) {
	if _, ok := u.p.users[m.UserID]; !ok {
		return nil, model.ErrNotFound
	}
	cp := *m
	u.p.users[cp.UserID] = &cp
	return &cp, nil
}

func (u *fakeUsers) Delete(_ context.Context, userID string) error {
	if _, ok := u.p.users[userID]; !ok {
		return model.ErrNotFound
	}
	delete(u.p.users, userID)
	return nil
}

type fakePosts struct{ p *fakeStore }

func (p *fakePosts) Create(_ context.Context, m *model.Post) (*model.Post, error) {
	cp := *m
	p.p.posts = append(p.p.posts, &cp)
	return &cp, nil
}

func (p *fakePosts) Get(_ context.Context, postID string) (*model.Post, error) {
	for _, m := range p.p.posts {
		if m.PostID == postID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (p *fakePosts) List(_ context.Context) ([]*model.Post, error) {
	out := make([]*model.Post, 0, len(p.p.posts))
	for i := len(p.p.posts) - 1; i >= 0; i-- {
		cp := *p.p.posts[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (p *fakePosts) UpdateReactions(_ context.Context, postID string, reactions []string) (*model.Post, error) {
	for _, m := range p.p.posts {
		if m.PostID == postID {
			m.Reactions = append([]string(nil), reactions...)
			cp := *m
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeChats struct{ p *fakeStore }

func (c *fakeChats) Create(_ context.Context, m *model.SharedChat) (*model.SharedChat, error) {
	cp := *m
	if cp.Messages == nil {
		cp.Messages = []model.ChatMessage{}
	}
	c.p.chats[cp.ChatID] = &cp
	return &cp, nil
}

func (c *fakeChats) Get(_ context.Context, chatID string) (*model.SharedChat, error) {
	m, ok := c.p.chats[chatID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *m
	cp.Messages = append([]model.ChatMessage(nil), m.Messages...)
	return &cp, nil
}

func (c *fakeChats) AppendMessage(_ context.Context, chatID string, msg model.ChatMessage) (*model.SharedChat, error) {
	m, ok := c.p.chats[chatID]
	if !ok {
		return nil, model.ErrNotFound
	}
	m.Messages = append(m.Messages, msg)
	return c.Get(context.Background(), chatID)
}

func (c *fakeChats) ListByParticipant(_ context.Context, userID string) ([]*model.SharedChat, error) {
	var out []*model.SharedChat
	for id, m := range c.p.chats {
		if m.Participants[0] == userID || m.Participants[1] == userID {
			cp, _ := c.Get(context.Background(), id)
			out = append(out, cp)
		}
	}
	return out, nil
}
