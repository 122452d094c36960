package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/moodshot/moodshot/internal/api/respond"
	"github.com/moodshot/moodshot/internal/services"
)

type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

func (h *ChatHandler) StartChat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		InitiatorID string `json:"initiatorId"`
		TargetID    string `json:"targetId"`
		MoodID      string `json:"moodId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	v, err := h.svc.StartChat(r.Context(), in.InitiatorID, in.TargetID, in.MoodID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, v)
}

func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetChat(r.Context(), mux.Vars(r)["chatId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, v)
}

func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	vs, err := h.svc.ListChats(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	if vs == nil {
		vs = []*services.ChatView{}
	}
	respond.WriteJSON(w, http.StatusOK, vs)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SenderID string `json:"senderId"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	v, err := h.svc.SendMessage(r.Context(), mux.Vars(r)["chatId"], in.SenderID, in.Text)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, v)
}
