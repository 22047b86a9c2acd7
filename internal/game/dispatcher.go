package game

import (
	"encoding/json"
	"errors"

	"drawit/internal/model"

	"github.com/rs/zerolog"
)

// Dispatcher routes inbound frames to rooms and players
type Dispatcher struct {
	registry *Registry
	log      zerolog.Logger
}

// NewDispatcher creates a dispatcher over registry
func NewDispatcher(registry *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		log:      log,
	}
}

// Dispatch handles one frame received from clientID over conn
func (d *Dispatcher) Dispatch(clientID string, conn Conn, frame []byte) {
	var env model.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		d.log.Warn().Err(err).Str("client", clientID).Msg("malformed frame")
		return
	}

	var err error
	switch env.Type {
	case model.TypeJoinRoomHandshake:
		err = d.handleJoin(clientID, conn, frame)
	case model.TypeDrawData:
		err = d.handleDrawData(clientID, frame)
	case model.TypeDrawAction:
		if room := d.registry.FindRoomByClient(clientID); room != nil {
			room.HandleDrawAction(clientID, frame)
		}
	case model.TypeChosenWord:
		err = d.handleChosenWord(frame)
	case model.TypeChatMessage:
		err = d.handleChat(clientID, frame)
	case model.TypePing:
		if p := d.registry.Player(clientID); p != nil {
			p.ReceivedPong()
		}
	case model.TypeDisconnectRequest:
		d.registry.PlayerLeft(clientID, true)
		conn.Close()
	default:
		d.log.Warn().Str("client", clientID).Str("type", env.Type).Msg("unknown frame type")
	}
	if err != nil {
		d.log.Warn().Err(err).Str("client", clientID).Str("type", env.Type).Msg("bad frame")
	}
}

func (d *Dispatcher) handleJoin(clientID string, conn Conn, frame []byte) error {
	var msg model.JoinRoomHandshake
	if err := json.Unmarshal(frame, &msg); err != nil {
		return err
	}
	if msg.ClientID != "" && msg.ClientID != clientID {
		d.log.Debug().Str("client", clientID).Str("claimed", msg.ClientID).Msg("handshake client id ignored")
	}

	room := d.registry.Room(msg.RoomName)
	if room == nil {
		return conn.Send(encode(model.NewGameError(model.ErrorRoomNotFound)))
	}
	if other := d.registry.FindRoomByClient(clientID); other != nil && other != room {
		other.Leave(clientID, true)
	}

	p, err := room.Join(clientID, msg.Username, conn)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return conn.Send(encode(model.NewGameError(model.ErrorUsernameTaken)))
	case errors.Is(err, ErrRoomFull):
		return conn.Send(encode(model.NewGameError(model.ErrorRoomFull)))
	case errors.Is(err, ErrRoomClosed):
		return conn.Send(encode(model.NewGameError(model.ErrorRoomNotFound)))
	case err != nil:
		return err
	}

	d.registry.PlayerJoined(p)
	return nil
}

func (d *Dispatcher) handleDrawData(clientID string, frame []byte) error {
	var msg model.DrawData
	if err := json.Unmarshal(frame, &msg); err != nil {
		return err
	}
	if room := d.registry.Room(msg.RoomName); room != nil {
		room.HandleDrawData(clientID, frame, msg)
	}
	return nil
}

func (d *Dispatcher) handleChosenWord(frame []byte) error {
	var msg model.ChosenWord
	if err := json.Unmarshal(frame, &msg); err != nil {
		return err
	}
	if room := d.registry.Room(msg.RoomName); room != nil {
		room.ChooseWord(msg.ChosenWord)
	}
	return nil
}

func (d *Dispatcher) handleChat(clientID string, frame []byte) error {
	var msg model.ChatMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		return err
	}
	if room := d.registry.Room(msg.RoomName); room != nil {
		room.HandleChat(clientID, frame, msg)
	}
	return nil
}
