package rest

import (
	"net/http"
	"os"

	"drawit/internal/service"
	"drawit/internal/transport/rest/handler"
	"drawit/internal/transport/rest/middleware"
	"drawit/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService *service.AuthService
	RoomService *service.RoomService
	WSHandler   *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	roomHandler := handler.NewRoomHandler(c.RoomService)
	sessionMW := middleware.NewSessionMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/session", authHandler.Session).Methods("POST", "OPTIONS")
	api.HandleFunc("/createRoom", roomHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/getRooms", roomHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/joinRoom", roomHandler.Join).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms/{name}/leaderboard", roomHandler.Leaderboard).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms/{name}/rounds", roomHandler.Rounds).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.WSHandler != nil {
		r.Handle("/ws/draw", sessionMW.RequireSession(http.HandlerFunc(c.WSHandler.Draw))).Methods("GET")
	}

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
