package model

// Message type tags carried in the "type" field of every frame
const (
	TypeChatMessage       = "chat_message"
	TypeDrawData          = "draw_data"
	TypeAnnouncement      = "announcement"
	TypeJoinRoomHandshake = "join_room_handshake"
	TypePhaseChange       = "phase_change"
	TypeChosenWord        = "chosen_word"
	TypeGameState         = "game_state"
	TypePing              = "ping"
	TypeDisconnectRequest = "disconnect_request"
	TypeDrawAction        = "draw_action"
	TypePlayersList       = "players_list"
	TypeNewWords          = "new_words"
	TypeRoundDrawInfo     = "round_draw_info"
	TypeGameError         = "game_error"
)

// Phase is a room game phase
type Phase string

const (
	PhaseWaitingForPlayers Phase = "WAITING_FOR_PLAYERS"
	PhaseWaitingForStart   Phase = "WAITING_FOR_START"
	PhaseNewRound          Phase = "NEW_ROUND"
	PhaseGameRunning       Phase = "GAME_RUNNING"
	PhaseShowWord          Phase = "SHOW_WORD"
)

// Announcement kinds
const (
	AnnouncementPlayerGuessed    = 0
	AnnouncementPlayerJoined     = 1
	AnnouncementPlayerLeft       = 2
	AnnouncementEverybodyGuessed = 3
)

// Game error codes
const (
	ErrorRoomNotFound  = 0
	ErrorRoomFull      = 1
	ErrorUsernameTaken = 2
)

// Motion events reported in draw_data
const (
	MotionUp   = 1
	MotionMove = 2
)

// Envelope is used to peek at the type tag before decoding the full frame
type Envelope struct {
	Type string `json:"type"`
}

type ChatMessage struct {
	Type      string `json:"type"`
	From      string `json:"from"`
	RoomName  string `json:"roomName"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type DrawData struct {
	Type        string  `json:"type"`
	RoomName    string  `json:"roomName"`
	Color       int     `json:"color"`
	Thickness   float64 `json:"thickness"`
	FromX       float64 `json:"fromX"`
	FromY       float64 `json:"fromY"`
	ToX         float64 `json:"toX"`
	ToY         float64 `json:"toY"`
	MotionEvent int     `json:"motionEvent"`
}

type DrawAction struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

type JoinRoomHandshake struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	RoomName string `json:"roomName"`
	ClientID string `json:"clientId"`
}

type ChosenWord struct {
	Type       string `json:"type"`
	ChosenWord string `json:"chosenWord"`
	RoomName   string `json:"roomName"`
}

type Announcement struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	Timestamp        int64  `json:"timestamp"`
	AnnouncementType int    `json:"announcementType"`
}

// PhaseChange announces a phase entry (Phase set) or a countdown tick (Phase empty).
// Time is the remaining time in milliseconds.
type PhaseChange struct {
	Type          string `json:"type"`
	Phase         Phase  `json:"phase,omitempty"`
	Time          int64  `json:"time"`
	DrawingPlayer string `json:"drawingPlayer,omitempty"`
}

type GameState struct {
	Type          string `json:"type"`
	DrawingPlayer string `json:"drawingPlayer"`
	Word          string `json:"word"`
}

type PlayerData struct {
	Username string `json:"username"`
	Drawing  bool   `json:"drawing"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

type PlayersList struct {
	Type    string       `json:"type"`
	Players []PlayerData `json:"players"`
}

type NewWords struct {
	Type     string   `json:"type"`
	NewWords []string `json:"newWords"`
}

// RoundDrawInfo replays the stroke log of the current round to a (re)joining player
type RoundDrawInfo struct {
	Type string   `json:"type"`
	Data []string `json:"data"`
}

type GameError struct {
	Type      string `json:"type"`
	ErrorType int    `json:"errorType"`
}

type Ping struct {
	Type string `json:"type"`
}

func NewAnnouncement(message string, timestamp int64, kind int) *Announcement {
	return &Announcement{Type: TypeAnnouncement, Message: message, Timestamp: timestamp, AnnouncementType: kind}
}

func NewPhaseChange(phase Phase, remainingMS int64, drawingPlayer string) *PhaseChange {
	return &PhaseChange{Type: TypePhaseChange, Phase: phase, Time: remainingMS, DrawingPlayer: drawingPlayer}
}

func NewGameState(drawingPlayer, word string) *GameState {
	return &GameState{Type: TypeGameState, DrawingPlayer: drawingPlayer, Word: word}
}

func NewPlayersList(players []PlayerData) *PlayersList {
	return &PlayersList{Type: TypePlayersList, Players: players}
}

func NewNewWords(words []string) *NewWords {
	return &NewWords{Type: TypeNewWords, NewWords: words}
}

func NewRoundDrawInfo(data []string) *RoundDrawInfo {
	return &RoundDrawInfo{Type: TypeRoundDrawInfo, Data: data}
}

func NewChosenWord(word, roomName string) *ChosenWord {
	return &ChosenWord{Type: TypeChosenWord, ChosenWord: word, RoomName: roomName}
}

func NewGameError(code int) *GameError {
	return &GameError{Type: TypeGameError, ErrorType: code}
}

func NewPing() *Ping {
	return &Ping{Type: TypePing}
}
