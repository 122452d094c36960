package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshot/moodshot/internal/advisory"
	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/engine"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/services"
	storesqlite "github.com/moodshot/moodshot/internal/store/sqlite"
)

var apiNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type apiEnv struct {
	server *httptest.Server
	clock  *clock.Fake
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	st, err := storesqlite.New(filepath.Join(t.TempDir(), "moodshot.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	fc := clock.NewFake(apiNow)
	router := NewRouter(st, advisory.NewStaticProvider(), fc)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &apiEnv{server: srv, clock: fc}
}

func (e *apiEnv) do(t *testing.T, method, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func (e *apiEnv) registerUser(t *testing.T, username string) model.User {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/users", map[string]interface{}{
		"username":    username,
		"displayName": username,
		"dob":         "2000-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var u model.User
	require.NoError(t, json.Unmarshal(body, &u))
	return u
}

func (e *apiEnv) createPost(t *testing.T, authorID, mood string) model.Post {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/posts", map[string]string{
		"authorId": authorID,
		"photoUrl": "https://example.com/p.jpg",
		"moodId":   mood,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p model.Post
	require.NoError(t, json.Unmarshal(body, &p))
	return p
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	env := newAPIEnv(t)

	u := env.registerUser(t, "ana")
	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, 0, u.StreakCount)

	// duplicate username
	resp, _ := env.do(t, http.MethodPost, "/api/users", map[string]interface{}{
		"username":    "ana",
		"displayName": "Other",
		"dob":         "2000-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// underage
	resp, _ = env.do(t, http.MethodPost, "/api/users", map[string]interface{}{
		"username":    "kid",
		"displayName": "Kid",
		"dob":         apiNow.AddDate(-12, 0, 0).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// login lookup
	resp, body := env.do(t, http.MethodGet, "/api/users?username=ana", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.User
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, u.UserID, got.UserID)

	// unknown username
	resp, _ = env.do(t, http.MethodGet, "/api/users?username=nobody", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ProfileUpdate(t *testing.T) {
	env := newAPIEnv(t)
	u := env.registerUser(t, "ana")

	resp, body := env.do(t, http.MethodPatch, "/api/users/"+u.UserID, map[string]interface{}{
		"fullName": "Ana Fuller",
		"country":  "Portugal",
		"sex":      "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got model.User
	require.NoError(t, json.Unmarshal(body, &got))
	require.NotNil(t, got.FullName)
	assert.Equal(t, "Ana Fuller", *got.FullName)
	assert.Equal(t, model.SexFemale, got.Sex)

	// unknown country rejected
	resp, _ = env.do(t, http.MethodPatch, "/api/users/"+u.UserID, map[string]interface{}{
		"country": "Atlantis",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// underage DOB patch rejected
	resp, _ = env.do(t, http.MethodPatch, "/api/users/"+u.UserID, map[string]interface{}{
		"dob": apiNow.AddDate(-10, 0, 0).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAPI_PostsAndStreak(t *testing.T) {
	env := newAPIEnv(t)
	u := env.registerUser(t, "ana")

	env.createPost(t, u.UserID, "calm")
	resp, body := env.do(t, http.MethodGet, "/api/users/"+u.UserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.User
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1, got.StreakCount)

	env.clock.Advance(24 * time.Hour)
	env.createPost(t, u.UserID, "stormy")
	_, body = env.do(t, http.MethodGet, "/api/users/"+u.UserID, nil)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 2, got.StreakCount)

	// unknown mood rejected
	resp, _ = env.do(t, http.MethodPost, "/api/posts", map[string]string{
		"authorId": u.UserID,
		"photoUrl": "https://example.com/p.jpg",
		"moodId":   "euphoric",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Reactions(t *testing.T) {
	env := newAPIEnv(t)
	u := env.registerUser(t, "ana")
	p := env.createPost(t, u.UserID, "calm")

	var last model.Post
	for i := 0; i < engine.MaxReactions+1; i++ {
		resp, body := env.do(t, http.MethodPost, "/api/posts/"+p.PostID+"/reactions", map[string]string{"symbol": "heart"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, &last))
	}
	assert.Len(t, last.Reactions, engine.MaxReactions)

	resp, _ := env.do(t, http.MethodPost, "/api/posts/"+p.PostID+"/reactions", map[string]string{"symbol": "🙃"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CircleAndFeed(t *testing.T) {
	env := newAPIEnv(t)
	a := env.registerUser(t, "aaa")
	b := env.registerUser(t, "bbb")
	c := env.registerUser(t, "ccc")

	env.createPost(t, a.UserID, "calm")
	env.createPost(t, b.UserID, "calm")
	env.createPost(t, c.UserID, "stormy")

	// empty circle sees everything
	resp, body := env.do(t, http.MethodGet, "/api/users/"+a.UserID+"/feed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []model.Post
	require.NoError(t, json.Unmarshal(body, &feed))
	assert.Len(t, feed, 3)

	resp, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/users/%s/circle/%s", a.UserID, b.UserID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.do(t, http.MethodGet, "/api/users/"+a.UserID+"/feed", nil)
	require.NoError(t, json.Unmarshal(body, &feed))
	assert.Len(t, feed, 2)
	for _, p := range feed {
		assert.NotEqual(t, c.UserID, p.AuthorID)
	}

	// circle cap: five members, sixth rejected
	full := env.registerUser(t, "full1")
	for i := 0; i < engine.MaxInnerCircle; i++ {
		m := env.registerUser(t, fmt.Sprintf("mem%d", i))
		resp, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/users/%s/circle/%s", full.UserID, m.UserID), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	sixth := env.registerUser(t, "sixth")
	resp, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/users/%s/circle/%s", full.UserID, sixth.UserID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_RoomsAndResonance(t *testing.T) {
	env := newAPIEnv(t)
	a := env.registerUser(t, "aaa")
	b := env.registerUser(t, "bbb")

	env.createPost(t, b.UserID, "calm")
	env.clock.Advance(90 * time.Minute)
	env.createPost(t, a.UserID, "calm")

	resp, body := env.do(t, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pops []model.RoomPopulation
	require.NoError(t, json.Unmarshal(body, &pops))
	require.Len(t, pops, 1)
	assert.Equal(t, "calm", pops[0].MoodID)
	assert.Equal(t, 2, pops[0].Count)

	resp, body = env.do(t, http.MethodGet, "/api/rooms/calm?userId="+a.UserID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var room struct {
		MoodID string       `json:"moodId"`
		Posts  []model.Post `json:"posts"`
		Match  *model.Post  `json:"match"`
	}
	require.NoError(t, json.Unmarshal(body, &room))
	assert.Len(t, room.Posts, 2)
	require.NotNil(t, room.Match)
	assert.Equal(t, b.UserID, room.Match.AuthorID)

	resp, _ = env.do(t, http.MethodGet, "/api/rooms/euphoric", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ChatLifecycle(t *testing.T) {
	env := newAPIEnv(t)
	a := env.registerUser(t, "aaa")
	b := env.registerUser(t, "bbb")

	resp, body := env.do(t, http.MethodPost, "/api/chats", map[string]string{
		"initiatorId": a.UserID,
		"targetId":    b.UserID,
		"moodId":      "calm",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var view struct {
		Chat  model.SharedChat `json:"chat"`
		State engine.ChatState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	chatID := view.Chat.ChatID
	assert.False(t, view.State.Expired)

	for i := 0; i < engine.MaxMessagesPerSender; i++ {
		resp, body = env.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", map[string]string{
			"senderId": a.UserID,
			"text":     fmt.Sprintf("hello %d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}
	resp, _ = env.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", map[string]string{
		"senderId": a.UserID,
		"text":     "over quota",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// other participant still writes
	resp, _ = env.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", map[string]string{
		"senderId": b.UserID,
		"text":     "still here",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// expiry closes writes, reads stay open
	env.clock.Advance(engine.ChatTTL)
	resp, _ = env.do(t, http.MethodPost, "/api/chats/"+chatID+"/messages", map[string]string{
		"senderId": b.UserID,
		"text":     "too late",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/api/chats/"+chatID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.True(t, view.State.Expired)
	assert.Len(t, view.Chat.Messages, engine.MaxMessagesPerSender+1)

	// listing by participant
	resp, body = env.do(t, http.MethodGet, "/api/users/"+a.UserID+"/chats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chats []services.ChatView
	require.NoError(t, json.Unmarshal(body, &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, chatID, chats[0].Chat.ChatID)
}

func TestAPI_AdvisoryAndCatalog(t *testing.T) {
	env := newAPIEnv(t)
	u := env.registerUser(t, "ana")
	env.createPost(t, u.UserID, "calm")

	resp, body := env.do(t, http.MethodGet, "/api/prompt", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prompt map[string]string
	require.NoError(t, json.Unmarshal(body, &prompt))
	assert.NotEmpty(t, prompt["prompt"])

	resp, body = env.do(t, http.MethodGet, "/api/users/"+u.UserID+"/insight", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var insight map[string]string
	require.NoError(t, json.Unmarshal(body, &insight))
	assert.NotEmpty(t, insight["insight"])

	resp, body = env.do(t, http.MethodGet, "/api/moods", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var catalog struct {
		Moods     []interface{} `json:"moods"`
		Reactions []interface{} `json:"reactions"`
	}
	require.NoError(t, json.Unmarshal(body, &catalog))
	assert.Len(t, catalog.Moods, 8)
	assert.Len(t, catalog.Reactions, 5)
}

func TestAPI_Health(t *testing.T) {
	env := newAPIEnv(t)
	BindServiceHealth(func() bool { return true })
	t.Cleanup(func() { BindServiceHealth(func() bool { return healthyFlag.Load() == 1 }) })

	resp, body := env.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "healthy", payload["status"])
}
