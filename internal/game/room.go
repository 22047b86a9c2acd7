package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"drawit/internal/model"
	"drawit/internal/words"

	"github.com/rs/zerolog"
)

type leftPlayer struct {
	player *Player
	index  int
}

// Room is one game instance. Every field below mu is guarded by it, and
// every phase change runs its side effects inside the same critical section.
type Room struct {
	name       string
	capacity   int
	generation int64

	opts     Options
	words    WordSource
	recorder Recorder
	log      zerolog.Logger
	now      func() time.Time
	onEmpty  func(*Room)

	mu         sync.Mutex
	players    []*Player
	phase      model.Phase
	word       string
	candidates []string
	drawIndex  int
	drawer     *Player
	guessed    map[string]struct{}
	strokes    []string
	lastDraw   *model.DrawData
	timer      *phaseTimer
	roundStart time.Time
	left       map[string]leftPlayer
	removals   map[string]*time.Timer
	closed     bool
}

func newRoom(name string, capacity int, generation int64, reg *Registry) *Room {
	return &Room{
		name:       name,
		capacity:   capacity,
		generation: generation,
		opts:       reg.opts,
		words:      reg.words,
		recorder:   reg.recorder,
		log:        reg.log.With().Str("room", name).Int64("generation", generation).Logger(),
		now:        time.Now,
		onEmpty:    reg.removeRoom,
		phase:      model.PhaseWaitingForPlayers,
		guessed:    make(map[string]struct{}),
		left:       make(map[string]leftPlayer),
		removals:   make(map[string]*time.Timer),
	}
}

func (r *Room) Name() string      { return r.name }
func (r *Room) Capacity() int     { return r.capacity }
func (r *Room) Generation() int64 { return r.generation }

// Key identifies this incarnation of the room name
func (r *Room) Key() string {
	return fmt.Sprintf("%s#%d", r.name, r.generation)
}

func (r *Room) Phase() model.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Has reports whether clientID is in the roster
func (r *Room) Has(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.member(clientID) != nil
}

// HasUsername reports whether a roster member uses username
func (r *Room) HasUsername(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Username == username {
			return true
		}
	}
	return false
}

// Standings returns the ranked player list
func (r *Room) Standings() []model.PlayerData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.standings()
}

func (r *Room) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Join adds a player to the roster, restoring a recently-left one when the
// client id is still buffered. A client already in the roster is rebound
// to conn.
func (r *Room) Join(clientID, username string, conn Conn) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRoomClosed
	}

	if p := r.member(clientID); p != nil {
		p.Rebind(conn)
		r.syncPlayer(p)
		r.log.Info().Str("client", clientID).Msg("player reattached")
		return p, nil
	}

	for _, p := range r.players {
		if p.Username == username {
			return nil, ErrUsernameTaken
		}
	}
	if len(r.players) >= r.capacity {
		return nil, ErrRoomFull
	}

	var p *Player
	index := len(r.players)
	if entry, ok := r.left[clientID]; ok {
		p = entry.player
		p.Rebind(conn)
		p.isDrawing = r.drawer == p
		index = entry.index
		delete(r.left, clientID)
		if t, ok := r.removals[clientID]; ok {
			t.Stop()
			delete(r.removals, clientID)
		}
		r.log.Info().Str("client", clientID).Int("score", p.score).Msg("player restored")
	} else {
		p = NewPlayer(clientID, username, conn)
		r.log.Info().Str("client", clientID).Str("username", username).Msg("player joined")
	}

	index = max(0, min(index, len(r.players)))
	r.players = slices.Insert(r.players, index, p)

	switch {
	case len(r.players) == 1:
		r.setPhase(model.PhaseWaitingForPlayers)
	case len(r.players) == 2 && r.phase == model.PhaseWaitingForPlayers:
		r.setPhase(model.PhaseWaitingForStart)
	case r.phase == model.PhaseWaitingForStart && len(r.players) == r.capacity:
		r.setPhase(model.PhaseNewRound)
	}

	r.syncPlayer(p)
	r.broadcastPlayers()
	r.broadcast(encode(model.NewAnnouncement(
		fmt.Sprintf("%s joined the party", p.Username),
		r.now().UnixMilli(),
		model.AnnouncementPlayerJoined,
	)))
	return p, nil
}

// Leave removes clientID from the roster. Unless permanent, the player is
// kept for RemoveAfter so a reconnect restores seat and score.
func (r *Room) Leave(clientID string, permanent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := slices.IndexFunc(r.players, func(p *Player) bool { return p.ClientID == clientID })
	if index < 0 {
		return
	}
	p := r.players[index]
	r.players = slices.Delete(r.players, index, index+1)

	if !permanent {
		r.left[clientID] = leftPlayer{player: p, index: index}
		r.scheduleRemoval(clientID)
	}
	r.log.Info().Str("client", clientID).Bool("permanent", permanent).Msg("player left")

	r.broadcastPlayers()
	r.broadcast(encode(model.NewAnnouncement(
		fmt.Sprintf("%s has left the party :(", p.Username),
		r.now().UnixMilli(),
		model.AnnouncementPlayerLeft,
	)))

	switch len(r.players) {
	case 1:
		r.setPhase(model.PhaseWaitingForPlayers)
	case 0:
		r.close()
	}
}

// Close tears the room down regardless of its roster
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.close()
	}
}

// ChooseWord sets the round word picked by the drawing player and starts
// the round. Only honored during NEW_ROUND.
func (r *Room) ChooseWord(word string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	word = strings.TrimSpace(word)
	if r.closed || r.phase != model.PhaseNewRound || word == "" {
		return false
	}
	r.word = word
	r.setPhase(model.PhaseGameRunning)
	return true
}

// HandleChat evaluates msg as a guess from senderID. Anything that is not a
// correct guess is relayed verbatim to the whole room.
func (r *Room) HandleChat(senderID string, raw []byte, msg model.ChatMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender := r.member(senderID)
	if sender == nil {
		return false
	}
	if !r.isCorrectGuess(sender, msg.Message) {
		r.broadcast(raw)
		return false
	}

	elapsed := r.now().Sub(r.roundStart)
	sender.score += GuessScore(r.opts.GuessScoreBase, r.opts.GuessScoreMultiplier, elapsed, r.opts.GameRunning)
	if r.drawer != nil {
		r.drawer.score += r.opts.DrawerBonus / len(r.players)
	}
	r.broadcastPlayers()
	r.broadcast(encode(model.NewAnnouncement(
		fmt.Sprintf("%s has guessed it!", sender.Username),
		r.now().UnixMilli(),
		model.AnnouncementPlayerGuessed,
	)))
	r.guessed[sender.Username] = struct{}{}

	if len(r.guessed) >= len(r.players)-1 {
		r.broadcast(encode(model.NewAnnouncement(
			"Everybody guessed it! New Round is starting...",
			r.now().UnixMilli(),
			model.AnnouncementEverybodyGuessed,
		)))
		r.finishDrawing()
		r.archiveRound()
		r.setPhase(model.PhaseNewRound)
	}
	return true
}

// HandleDrawData relays a stroke while a round is running and remembers it
// as the last stroke in every phase.
func (r *Room) HandleDrawData(senderID string, raw []byte, data model.DrawData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.member(senderID) == nil {
		return
	}
	if r.phase == model.PhaseGameRunning {
		r.broadcastExcept(raw, senderID)
		r.strokes = append(r.strokes, string(raw))
	}
	r.lastDraw = &data
}

// HandleDrawAction relays an undo/clear style action in any phase
func (r *Room) HandleDrawAction(senderID string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.member(senderID) == nil {
		return
	}
	r.broadcastExcept(raw, senderID)
	r.strokes = append(r.strokes, string(raw))
}

func (r *Room) member(clientID string) *Player {
	for _, p := range r.players {
		if p.ClientID == clientID {
			return p
		}
	}
	return nil
}

func (r *Room) isCorrectGuess(sender *Player, text string) bool {
	if r.phase != model.PhaseGameRunning || r.word == "" || sender == r.drawer {
		return false
	}
	if _, ok := r.guessed[sender.Username]; ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(r.word))
}

// setPhase assigns phase and applies its entry effects
func (r *Room) setPhase(phase model.Phase) {
	from := r.phase
	r.phase = phase
	r.log.Debug().Str("from", string(from)).Str("to", string(phase)).Msg("phase change")

	switch phase {
	case model.PhaseWaitingForPlayers:
		r.stopTimer()
		r.resetRound()
		r.broadcast(encode(model.NewPhaseChange(phase, r.opts.WaitingForStart.Milliseconds(), "")))
	case model.PhaseWaitingForStart:
		r.shuffle()
		r.resetRound()
		r.startTimer(r.opts.WaitingForStart)
	case model.PhaseNewRound:
		if from == model.PhaseWaitingForStart {
			r.shuffle()
		}
		r.enterNewRound()
	case model.PhaseGameRunning:
		r.enterGameRunning()
	case model.PhaseShowWord:
		r.enterShowWord()
	}
}

// advance applies the transition for a phase whose timer ran out
func (r *Room) advance() {
	switch r.phase {
	case model.PhaseWaitingForStart:
		r.setPhase(model.PhaseNewRound)
	case model.PhaseNewRound:
		r.word = ""
		r.setPhase(model.PhaseGameRunning)
	case model.PhaseGameRunning:
		r.finishDrawing()
		r.setPhase(model.PhaseShowWord)
	case model.PhaseShowWord:
		r.setPhase(model.PhaseNewRound)
	default:
		r.setPhase(model.PhaseWaitingForPlayers)
	}
}

func (r *Room) enterNewRound() {
	r.strokes = nil
	r.lastDraw = nil
	r.word = ""
	r.candidates = r.words.Random(r.opts.WordChoices)
	r.nextDrawer()

	r.broadcastPlayers()
	if r.drawer != nil {
		r.sendTo(r.drawer, encode(model.NewNewWords(r.candidates)))
	}
	r.startTimer(r.opts.NewRound)
}

func (r *Room) enterGameRunning() {
	clear(r.guessed)

	word := r.word
	if word == "" && len(r.candidates) > 0 {
		word = r.candidates[rand.IntN(len(r.candidates))]
	}
	if word == "" {
		if picked := r.words.Random(1); len(picked) > 0 {
			word = picked[0]
		}
	}
	r.word = word

	if r.drawer == nil {
		r.nextDrawer()
	}
	if r.drawer != nil {
		masked := encode(model.NewGameState(r.drawer.Username, words.Mask(word)))
		r.broadcastExcept(masked, r.drawer.ClientID)
		r.sendTo(r.drawer, encode(model.NewGameState(r.drawer.Username, word)))
	}

	r.roundStart = r.now()
	r.startTimer(r.opts.GameRunning)
}

func (r *Room) enterShowWord() {
	if len(r.guessed) == 0 && r.drawer != nil {
		r.drawer.score -= r.opts.PenaltyNobodyGuessed
	}
	r.broadcastPlayers()
	if r.word != "" {
		r.broadcast(encode(model.NewChosenWord(r.word, r.name)))
	}
	r.archiveRound()
	r.startTimer(r.opts.ShowWord)
}

func (r *Room) resetRound() {
	r.word = ""
	r.candidates = nil
	r.strokes = nil
	r.lastDraw = nil
	if r.drawer != nil {
		r.drawer.isDrawing = false
		r.drawer = nil
	}
}

// nextDrawer picks the drawing player from the rotation index
func (r *Room) nextDrawer() {
	if r.drawer != nil {
		r.drawer.isDrawing = false
		r.drawer = nil
	}
	if len(r.players) == 0 {
		return
	}

	last := len(r.players) - 1
	r.drawer = r.players[min(r.drawIndex, last)]
	r.drawer.isDrawing = true

	if r.drawIndex < last {
		r.drawIndex++
	} else {
		r.drawIndex = 0
	}
}

// finishDrawing lifts the pen for everyone when the round ends mid-stroke
func (r *Room) finishDrawing() {
	if r.lastDraw == nil || len(r.strokes) == 0 || r.lastDraw.MotionEvent != model.MotionMove {
		return
	}
	up := *r.lastDraw
	up.Type = model.TypeDrawData
	up.MotionEvent = model.MotionUp
	r.broadcast(encode(&up))
}

func (r *Room) shuffle() {
	rand.Shuffle(len(r.players), func(i, j int) {
		r.players[i], r.players[j] = r.players[j], r.players[i]
	})
}

func (r *Room) scheduleRemoval(clientID string) {
	if old, ok := r.removals[clientID]; ok {
		old.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(r.opts.RemoveAfter, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.removals[clientID] != t {
			return
		}
		delete(r.removals, clientID)
		delete(r.left, clientID)
		r.log.Debug().Str("client", clientID).Msg("grace period over")
	})
	r.removals[clientID] = t
}

func (r *Room) close() {
	r.closed = true
	r.stopTimer()
	for id, t := range r.removals {
		t.Stop()
		delete(r.removals, id)
	}
	clear(r.left)
	r.resetRound()
	r.log.Info().Msg("room closed")

	r.recorder.RoomClosed(r.Key())
	if r.onEmpty != nil {
		r.onEmpty(r)
	}
}

// syncPlayer brings a (re)joining player up to date
func (r *Room) syncPlayer(p *Player) {
	if r.word != "" && r.drawer != nil {
		word := r.word
		if p != r.drawer && r.phase != model.PhaseShowWord {
			word = words.Mask(word)
		}
		r.sendTo(p, encode(model.NewGameState(r.drawer.Username, word)))
	}

	r.sendTo(p, encode(model.NewPhaseChange(r.phase, r.remaining().Milliseconds(), r.drawerName())))

	if r.phase == model.PhaseGameRunning || r.phase == model.PhaseShowWord {
		r.sendTo(p, encode(model.NewRoundDrawInfo(slices.Clone(r.strokes))))
	}
}

func (r *Room) drawerName() string {
	if r.drawer == nil {
		return ""
	}
	return r.drawer.Username
}

// standings ranks the roster by score and stores the rank on each player
func (r *Room) standings() []model.PlayerData {
	ranked := slices.Clone(r.players)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]model.PlayerData, len(ranked))
	for i, p := range ranked {
		p.rank = i + 1
		out[i] = p.data()
	}
	return out
}

func (r *Room) archiveRound() {
	if r.word == "" {
		return
	}
	guessed := make([]string, 0, len(r.guessed))
	for name := range r.guessed {
		guessed = append(guessed, name)
	}
	sort.Strings(guessed)

	r.recorder.RoundFinished(model.RoundRecord{
		Room:          r.name,
		Generation:    r.generation,
		Word:          r.word,
		DrawingPlayer: r.drawerName(),
		Guessed:       guessed,
		Standings:     r.standings(),
		StartedAt:     r.roundStart,
		FinishedAt:    r.now(),
	})
}
