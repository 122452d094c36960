package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/moodshot/moodshot/internal/advisory"
	"github.com/moodshot/moodshot/internal/api/respond"
	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/moods"
	"github.com/moodshot/moodshot/internal/services"
)

// insightWindow is how far back the mood insight looks.
const insightWindow = 7 * 24 * time.Hour

type AdvisoryHandler struct {
	provider advisory.Provider
	users    *services.UserService
	posts    *services.PostService
	clock    clock.Clock
}

func NewAdvisoryHandler(p advisory.Provider, users *services.UserService, posts *services.PostService, c clock.Clock) *AdvisoryHandler {
	return &AdvisoryHandler{provider: p, users: users, posts: posts, clock: c}
}

// DailyPrompt handles GET /api/prompt.
func (h *AdvisoryHandler) DailyPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.provider.DailyPrompt(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"prompt": prompt})
}

// MoodInsight handles GET /api/users/{userId}/insight.
func (h *AdvisoryHandler) MoodInsight(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if _, err := h.users.GetUser(r.Context(), userID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	all, err := h.posts.ListPosts(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	now := h.clock.Now()
	var history []advisory.Sample
	for _, p := range all {
		if p.AuthorID != userID || now.Sub(p.CreationTime) >= insightWindow {
			continue
		}
		history = append(history, advisory.Sample{
			MoodID: p.MoodID,
			Date:   p.CreationTime.UTC().Format("2006-01-02"),
		})
	}

	insight, err := h.provider.MoodInsight(r.Context(), history)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"insight": insight})
}

// SuggestMood handles GET /api/suggest?photo=. An empty moodId means the
// provider has no suggestion; the picker stays manual.
func (h *AdvisoryHandler) SuggestMood(w http.ResponseWriter, r *http.Request) {
	photo := r.URL.Query().Get("photo")
	if photo == "" {
		respond.WriteBadRequest(w, "photo query parameter required")
		return
	}
	moodID, err := h.provider.SuggestMood(r.Context(), photo)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"moodId": moodID})
}

// MoodCatalog handles GET /api/moods: the mood and reaction catalogs clients
// render pickers from.
func MoodCatalog(w http.ResponseWriter, _ *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"moods":     moods.Catalog,
		"reactions": moods.Reactions,
	})
}
