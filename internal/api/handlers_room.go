package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/moodshot/moodshot/internal/api/respond"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/services"
)

type RoomHandler struct {
	svc *services.RoomService
}

func NewRoomHandler(svc *services.RoomService) *RoomHandler { return &RoomHandler{svc: svc} }

// ListRooms handles GET /api/rooms: live populations, catalog order.
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	pops, err := h.svc.Populations(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if pops == nil {
		pops = []model.RoomPopulation{}
	}
	respond.WriteJSON(w, http.StatusOK, pops)
}

// roomView is the GET /api/rooms/{moodId} payload: the room's posts and at
// most one resonance match for the calling user.
type roomView struct {
	MoodID string       `json:"moodId"`
	Posts  []model.Post `json:"posts"`
	Match  *model.Post  `json:"match,omitempty"`
}

// GetRoom handles GET /api/rooms/{moodId}?userId=. The match is only
// computed when a userId is supplied.
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	moodID := mux.Vars(r)["moodId"]
	posts, err := h.svc.OpenRoom(r.Context(), moodID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}

	view := roomView{MoodID: moodID, Posts: make([]model.Post, 0, len(posts))}
	for _, p := range posts {
		view.Posts = append(view.Posts, *p)
	}

	if userID := r.URL.Query().Get("userId"); userID != "" {
		match, err := h.svc.FindResonance(r.Context(), moodID, userID)
		if err != nil {
			respond.WriteServiceError(w, err)
			return
		}
		view.Match = match
	}
	respond.WriteJSON(w, http.StatusOK, view)
}
