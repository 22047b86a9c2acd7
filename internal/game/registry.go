package game

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Registry tracks live rooms and registered players. It never holds its
// own lock while calling into a room.
type Registry struct {
	opts     Options
	words    WordSource
	recorder Recorder
	log      zerolog.Logger

	mu         sync.Mutex
	rooms      map[string]*Room
	players    map[string]*Player
	generation int64
}

// NewRegistry creates an empty registry
func NewRegistry(words WordSource, opts Options, log zerolog.Logger) *Registry {
	return &Registry{
		opts:     opts.withDefaults(),
		words:    words,
		recorder: nopRecorder{},
		log:      log,
		rooms:    make(map[string]*Room),
		players:  make(map[string]*Player),
	}
}

// SetRecorder injects the game event recorder. Call before creating rooms.
func (reg *Registry) SetRecorder(rec Recorder) {
	if rec == nil {
		rec = nopRecorder{}
	}
	reg.recorder = rec
}

func (reg *Registry) Options() Options {
	return reg.opts
}

// CreateRoom registers a new room under an unused name
func (reg *Registry) CreateRoom(name string, capacity int) (*Room, error) {
	if capacity < 2 {
		return nil, ErrInvalidCapacity
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.rooms[name]; ok {
		return nil, ErrRoomExists
	}
	reg.generation++
	room := newRoom(name, capacity, reg.generation, reg)
	reg.rooms[name] = room
	reg.log.Info().Str("room", name).Int("capacity", capacity).Int64("generation", reg.generation).Msg("room created")
	return room, nil
}

// Room returns the room registered under name, or nil
func (reg *Registry) Room(name string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[name]
}

// RoomKey returns the key of the current incarnation of name
func (reg *Registry) RoomKey(name string) (string, bool) {
	room := reg.Room(name)
	if room == nil {
		return "", false
	}
	return room.Key(), true
}

// Rooms returns a snapshot of all rooms sorted by name
func (reg *Registry) Rooms() []*Room {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].name < rooms[j].name })
	return rooms
}

// removeRoom drops room if it is still the registered incarnation
func (reg *Registry) removeRoom(room *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.rooms[room.name] == room {
		delete(reg.rooms, room.name)
		reg.log.Info().Str("room", room.name).Int64("generation", room.generation).Msg("room removed")
	}
}

// Player returns the registered player for clientID, or nil
func (reg *Registry) Player(clientID string) *Player {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.players[clientID]
}

// PlayerJoined registers p and (re)starts its liveness probe
func (reg *Registry) PlayerJoined(p *Player) {
	reg.mu.Lock()
	old := reg.players[p.ClientID]
	reg.players[p.ClientID] = p
	reg.mu.Unlock()

	if old != nil && old != p {
		old.StopProbe()
	}
	clientID := p.ClientID
	p.StartProbe(reg.opts.PingInterval, func() {
		reg.log.Info().Str("client", clientID).Msg("liveness timeout")
		reg.PlayerLeft(clientID, false)
	})
}

// PlayerLeft evicts clientID from its room and deregisters it. Without
// immediate it only acts once the player is offline.
func (reg *Registry) PlayerLeft(clientID string, immediate bool) {
	p := reg.Player(clientID)
	if !immediate && (p == nil || p.Online()) {
		return
	}

	if room := reg.FindRoomByClient(clientID); room != nil {
		room.Leave(clientID, immediate)
	}
	if p != nil {
		p.StopProbe()
	}

	reg.mu.Lock()
	if reg.players[clientID] == p {
		delete(reg.players, clientID)
	}
	reg.mu.Unlock()
}

// FindRoomByClient returns the room whose roster holds clientID, or nil
func (reg *Registry) FindRoomByClient(clientID string) *Room {
	for _, room := range reg.Rooms() {
		if room.Has(clientID) {
			return room
		}
	}
	return nil
}

// Shutdown closes every room and stops every probe
func (reg *Registry) Shutdown() {
	for _, room := range reg.Rooms() {
		room.Close()
	}

	reg.mu.Lock()
	players := make([]*Player, 0, len(reg.players))
	for id, p := range reg.players {
		players = append(players, p)
		delete(reg.players, id)
	}
	reg.mu.Unlock()

	for _, p := range players {
		p.StopProbe()
	}
}
