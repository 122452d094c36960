package api

import (
	"github.com/gorilla/mux"

	"github.com/moodshot/moodshot/internal/advisory"
	"github.com/moodshot/moodshot/internal/api/recovery"
	"github.com/moodshot/moodshot/internal/clock"
	"github.com/moodshot/moodshot/internal/services"
	"github.com/moodshot/moodshot/internal/store"
)

// NewRouter wires all HTTP routes to handlers.
func NewRouter(st store.Store, provider advisory.Provider, clk clock.Clock) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	userSvc := services.NewUserService(st, clk)
	postSvc := services.NewPostService(st, clk)
	roomSvc := services.NewRoomService(st, clk)
	chatSvc := services.NewChatService(st, clk)

	// Users
	users := NewUserHandler(userSvc)
	root.HandleFunc("/api/users", users.Register).Methods("POST")
	root.HandleFunc("/api/users", users.LookupUser).Methods("GET").Queries("username", "{username}")
	root.HandleFunc("/api/users/{userId}", users.GetUser).Methods("GET")
	root.HandleFunc("/api/users/{userId}", users.UpdateProfile).Methods("PATCH")
	root.HandleFunc("/api/users/{userId}", users.DeleteUser).Methods("DELETE")
	root.HandleFunc("/api/users/{userId}/circle/{targetId}", users.ToggleCircle).Methods("POST")
	root.HandleFunc("/api/users/{userId}/feed", users.Feed).Methods("GET")
	root.HandleFunc("/api/users/{userId}/moodstats", users.MoodStats).Methods("GET")

	// Posts
	posts := NewPostHandler(postSvc)
	root.HandleFunc("/api/posts", posts.CreatePost).Methods("POST")
	root.HandleFunc("/api/posts", posts.ListPosts).Methods("GET")
	root.HandleFunc("/api/posts/{postId}", posts.GetPost).Methods("GET")
	root.HandleFunc("/api/posts/{postId}/reactions", posts.React).Methods("POST")

	// Rooms
	rooms := NewRoomHandler(roomSvc)
	root.HandleFunc("/api/rooms", rooms.ListRooms).Methods("GET")
	root.HandleFunc("/api/rooms/{moodId}", rooms.GetRoom).Methods("GET")

	// Chats
	chats := NewChatHandler(chatSvc)
	root.HandleFunc("/api/chats", chats.StartChat).Methods("POST")
	root.HandleFunc("/api/chats/{chatId}", chats.GetChat).Methods("GET")
	root.HandleFunc("/api/chats/{chatId}/messages", chats.SendMessage).Methods("POST")
	root.HandleFunc("/api/users/{userId}/chats", chats.ListChats).Methods("GET")

	// Advisory
	adv := NewAdvisoryHandler(provider, userSvc, postSvc, clk)
	root.HandleFunc("/api/prompt", adv.DailyPrompt).Methods("GET")
	root.HandleFunc("/api/suggest", adv.SuggestMood).Methods("GET")
	root.HandleFunc("/api/users/{userId}/insight", adv.MoodInsight).Methods("GET")
	root.HandleFunc("/api/moods", MoodCatalog).Methods("GET")

	// Health
	healthHandler := NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return root
}
