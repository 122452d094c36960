package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/moodshot/moodshot/internal/api/respond"
	"github.com/moodshot/moodshot/internal/api/validate"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username    string     `json:"username"`
		DisplayName string     `json:"displayName"`
		FullName    *string    `json:"fullName,omitempty"`
		DateOfBirth time.Time  `json:"dob"`
		Country     *string    `json:"country,omitempty"`
		Sex         *model.Sex `json:"sex,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.Register(in.Username, in.DisplayName, in.DateOfBirth, in.Country, in.Sex); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	u := &model.User{
		Username:    in.Username,
		DisplayName: in.DisplayName,
		FullName:    in.FullName,
		DateOfBirth: in.DateOfBirth,
		Country:     in.Country,
	}
	if in.Sex != nil {
		u.Sex = *in.Sex
	}
	out, err := h.svc.Register(r.Context(), u)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// LookupUser handles GET /api/users?username= (the login hook).
func (h *UserHandler) LookupUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respond.WriteBadRequest(w, "username query parameter required")
		return
	}
	u, err := h.svc.GetUserByUsername(r.Context(), username)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	u, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var upd model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.ProfileUpdate(upd); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ToggleCircle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	u, err := h.svc.ToggleCircle(r.Context(), vars["userId"], vars["targetId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	posts, err := h.svc.Feed(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	respond.WriteJSON(w, http.StatusOK, posts)
}

func (h *UserHandler) MoodStats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	stats, err := h.svc.MoodStats(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if stats == nil {
		stats = []model.MoodStat{}
	}
	respond.WriteJSON(w, http.StatusOK, stats)
}
