package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/store"
)

// SqliteStore implements store.Store on a SQLite database.
type SqliteStore struct {
	db *sql.DB
}

// DB exposes the underlying *sql.DB connection (health probes, tests).
func (s *SqliteStore) DB() *sql.DB { return s.db }

// New opens (or creates) a SQLite database file and ensures the schema.
func New(path string) (*SqliteStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store onto an existing connection (used by the factory
// and tests).
func NewWithDB(db *sql.DB) (*SqliteStore, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Users() store.Users { return &users{db: s.db} }
func (s *SqliteStore) Posts() store.Posts { return &posts{db: s.db} }
func (s *SqliteStore) Chats() store.Chats { return &chats{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *SqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- helpers ---

func msOf(t time.Time) int64         { return t.UTC().UnixMilli() }
func timeOf(ms int64) time.Time      { return time.UnixMilli(ms).UTC() }
func jsonList(v []string) string     { b, _ := json.Marshal(v); return string(b) }
func listJSON(s string) []string {
	var out []string
	_ = json.Unmarshal([]byte(s), &out)
	if out == nil {
		out = []string{}
	}
	return out
}

func optStr(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func strOpt(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE")
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.InnerCircleIDs == nil {
		out.InnerCircleIDs = []string{}
	}
	_, err := u.db.ExecContext(ctx, `INSERT INTO users
        (user_id, username, display_name, full_name, avatar_url, dob_ms, country, sex, inner_circle, streak_count, last_post_date, creation_ms)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		out.UserID, out.Username, out.DisplayName, optStr(out.FullName), optStr(out.AvatarURL),
		msOf(out.DateOfBirth), optStr(out.Country), string(out.Sex), jsonList(out.InnerCircleIDs),
		out.StreakCount, out.LastPostDate, msOf(out.CreationTime))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q taken", model.ErrConflict, out.Username)
		}
		return nil, err
	}
	return &out, nil
}

const userCols = `user_id, username, display_name, full_name, avatar_url, dob_ms, country, sex, inner_circle, streak_count, last_post_date, creation_ms`

func scanUser(row *sql.Row) (*model.User, error) {
	var m model.User
	var fullName, avatar, country sql.NullString
	var sex, circle string
	var dobMS, createdMS int64
	err := row.Scan(&m.UserID, &m.Username, &m.DisplayName, &fullName, &avatar, &dobMS,
		&country, &sex, &circle, &m.StreakCount, &m.LastPostDate, &createdMS)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.FullName = strOpt(fullName)
	m.AvatarURL = strOpt(avatar)
	m.Country = strOpt(country)
	m.Sex = model.Sex(sex)
	m.InnerCircleIDs = listJSON(circle)
	m.DateOfBirth = timeOf(dobMS)
	m.CreationTime = timeOf(createdMS)
	return &m, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE user_id = ?`, userID))
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE username = ?`, username))
}

func (u *users) Update(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.InnerCircleIDs == nil {
		out.InnerCircleIDs = []string{}
	}
	res, err := u.db.ExecContext(ctx, `UPDATE users SET
        username=?, display_name=?, full_name=?, avatar_url=?, dob_ms=?, country=?, sex=?, inner_circle=?, streak_count=?, last_post_date=?
        WHERE user_id=?`,
		out.Username, out.DisplayName, optStr(out.FullName), optStr(out.AvatarURL),
		msOf(out.DateOfBirth), optStr(out.Country), string(out.Sex), jsonList(out.InnerCircleIDs),
		out.StreakCount, out.LastPostDate, out.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q taken", model.ErrConflict, out.Username)
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return u.Get(ctx, out.UserID)
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Posts ---

type posts struct{ db *sql.DB }

func (p *posts) Create(ctx context.Context, m *model.Post) (*model.Post, error) {
	out := *m
	if out.Reactions == nil {
		out.Reactions = []string{}
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO posts
        (post_id, author_id, author_name, photo_url, mood_id, creation_ms, reactions)
        VALUES (?,?,?,?,?,?,?)`,
		out.PostID, out.AuthorID, out.AuthorName, out.PhotoURL, out.MoodID, msOf(out.CreationTime), jsonList(out.Reactions))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanPost(row interface{ Scan(...interface{}) error }) (*model.Post, error) {
	var m model.Post
	var reactions string
	var createdMS int64
	err := row.Scan(&m.PostID, &m.AuthorID, &m.AuthorName, &m.PhotoURL, &m.MoodID, &createdMS, &reactions)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.CreationTime = timeOf(createdMS)
	m.Reactions = listJSON(reactions)
	return &m, nil
}

func (p *posts) Get(ctx context.Context, postID string) (*model.Post, error) {
	return scanPost(p.db.QueryRowContext(ctx, `SELECT post_id, author_id, author_name, photo_url, mood_id, creation_ms, reactions
        FROM posts WHERE post_id = ?`, postID))
}

func (p *posts) List(ctx context.Context) ([]*model.Post, error) {
	// Ledger order: newest first, by insertion.
	rows, err := p.db.QueryContext(ctx, `SELECT post_id, author_id, author_name, photo_url, mood_id, creation_ms, reactions
        FROM posts ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Post
	for rows.Next() {
		m, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *posts) UpdateReactions(ctx context.Context, postID string, reactions []string) (*model.Post, error) {
	if reactions == nil {
		reactions = []string{}
	}
	res, err := p.db.ExecContext(ctx, `UPDATE posts SET reactions = ? WHERE post_id = ?`, jsonList(reactions), postID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, postID)
}

// --- Chats ---

type chats struct{ db *sql.DB }

func (c *chats) Create(ctx context.Context, m *model.SharedChat) (*model.SharedChat, error) {
	out := *m
	if out.Messages == nil {
		out.Messages = []model.ChatMessage{}
	}
	_, err := c.db.ExecContext(ctx, `INSERT INTO chats
        (chat_id, participant_a, participant_b, mood_id, creation_ms, expires_ms)
        VALUES (?,?,?,?,?,?)`,
		out.ChatID, out.Participants[0], out.Participants[1], out.MoodID, msOf(out.CreationTime), msOf(out.ExpiresAt))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *chats) Get(ctx context.Context, chatID string) (*model.SharedChat, error) {
	var m model.SharedChat
	var createdMS, expiresMS int64
	row := c.db.QueryRowContext(ctx, `SELECT chat_id, participant_a, participant_b, mood_id, creation_ms, expires_ms
        FROM chats WHERE chat_id = ?`, chatID)
	err := row.Scan(&m.ChatID, &m.Participants[0], &m.Participants[1], &m.MoodID, &createdMS, &expiresMS)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.CreationTime = timeOf(createdMS)
	m.ExpiresAt = timeOf(expiresMS)
	msgs, err := c.messages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	m.Messages = msgs
	return &m, nil
}

func (c *chats) messages(ctx context.Context, chatID string) ([]model.ChatMessage, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT message_id, sender_id, body, ts_ms
        FROM chat_messages WHERE chat_id = ? ORDER BY seq ASC`, chatID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	msgs := []model.ChatMessage{}
	for rows.Next() {
		var msg model.ChatMessage
		var tsMS int64
		if err := rows.Scan(&msg.MessageID, &msg.SenderID, &msg.Text, &tsMS); err != nil {
			return nil, err
		}
		msg.Timestamp = timeOf(tsMS)
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (c *chats) AppendMessage(ctx context.Context, chatID string, msg model.ChatMessage) (*model.SharedChat, error) {
	var exists int
	if err := c.db.QueryRowContext(ctx, `SELECT 1 FROM chats WHERE chat_id = ?`, chatID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	_, err := c.db.ExecContext(ctx, `INSERT INTO chat_messages (message_id, chat_id, sender_id, body, ts_ms)
        VALUES (?,?,?,?,?)`, msg.MessageID, chatID, msg.SenderID, msg.Text, msOf(msg.Timestamp))
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, chatID)
}

func (c *chats) ListByParticipant(ctx context.Context, userID string) ([]*model.SharedChat, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT chat_id FROM chats
        WHERE participant_a = ? OR participant_b = ? ORDER BY creation_ms DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var out []*model.SharedChat
	for _, id := range ids {
		chat, err := c.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, chat)
	}
	return out, nil
}
