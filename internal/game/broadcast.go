package game

import "drawit/internal/model"

// Callers hold r.mu. Conn.Send never blocks.

func (r *Room) broadcast(data []byte) {
	for _, p := range r.players {
		r.sendTo(p, data)
	}
}

func (r *Room) broadcastExcept(data []byte, clientID string) {
	for _, p := range r.players {
		if p.ClientID != clientID {
			r.sendTo(p, data)
		}
	}
}

func (r *Room) broadcastPlayers() {
	standings := r.standings()
	r.broadcast(encode(model.NewPlayersList(standings)))
	r.recorder.ScoresChanged(r.Key(), standings)
}

func (r *Room) sendTo(p *Player, data []byte) {
	if err := p.Send(data); err != nil {
		r.log.Debug().Err(err).Str("client", p.ClientID).Msg("skipping send")
	}
}
