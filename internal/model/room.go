package model

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers"`
}

// BasicApiResponse is returned by room create/join endpoints
type BasicApiResponse struct {
	Successful bool   `json:"successful"`
	Message    string `json:"message,omitempty"`
}

// RoomResponse describes a room in search results
type RoomResponse struct {
	Name        string `json:"name"`
	MaxPlayers  int    `json:"maxPlayers"`
	PlayerCount int    `json:"playerCount"`
}

// LeaderboardEntry is a single ranked row of a room leaderboard
type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}
