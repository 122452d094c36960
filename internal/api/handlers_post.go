package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/moodshot/moodshot/internal/api/respond"
	"github.com/moodshot/moodshot/internal/api/validate"
	"github.com/moodshot/moodshot/internal/model"
	"github.com/moodshot/moodshot/internal/services"
)

type PostHandler struct {
	svc *services.PostService
}

func NewPostHandler(svc *services.PostService) *PostHandler { return &PostHandler{svc: svc} }

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AuthorID string `json:"authorId"`
		PhotoURL string `json:"photoUrl"`
		MoodID   string `json:"moodId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.CreatePost(in.AuthorID, in.PhotoURL, in.MoodID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p, err := h.svc.CreatePost(r.Context(), in.AuthorID, in.PhotoURL, in.MoodID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPost(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	respond.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Symbol == "" {
		respond.WriteBadRequest(w, "symbol is required")
		return
	}
	p, err := h.svc.React(r.Context(), mux.Vars(r)["postId"], in.Symbol)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}
