package room

import (
	"bidwhist/internal/game"
	"bidwhist/internal/shared"

	"github.com/rs/zerolog/log"
)

// Start fills empty table seats with bots and deals a new hand.
func (r *Room) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomClosed
	}
	if r.whist == nil {
		return ErrNotBidWhist
	}
	return r.start()
}

// Bid submits a bid for seat. Out-of-turn and out-of-phase bids come back as
// game errors and leave the table untouched.
func (r *Room) Bid(seat, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomClosed
	}
	if r.whist == nil {
		return ErrNotBidWhist
	}
	return r.bid(seat, value)
}

// Play puts cardID from seat's hand on the table.
func (r *Room) Play(seat int, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomClosed
	}
	if r.whist == nil {
		return ErrNotBidWhist
	}
	return r.play(seat, cardID)
}

// SyncSeat sends the public state and, for a table seat, its hand. Used to
// catch up a member who joined mid-game.
func (r *Room) SyncSeat(seat int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.whist == nil {
		return
	}
	r.sendTo(seat, shared.GameState{Type: shared.TypeGameState, State: r.whist.PublicState()})
	if seat < game.Seats {
		r.sendTo(seat, shared.HandDealt{Type: shared.TypeHandDealt, Hand: r.whist.Hand(seat)})
	}
}

// State returns the public projection of the table.
func (r *Room) State() (game.PublicState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.whist == nil {
		return game.PublicState{}, false
	}
	return r.whist.PublicState(), true
}

// Hand returns a copy of one seat's cards.
func (r *Room) Hand(seat int) []game.Card {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.whist == nil {
		return nil
	}
	return r.whist.Hand(seat)
}

func (r *Room) start() error {
	r.padWithBots()
	events, err := r.whist.Start()
	if err != nil {
		return err
	}
	log.Info().Str("room", r.id).Int("dealer", r.whist.Dealer()).Msg("hand dealt")
	r.dispatch(events)
	return nil
}

func (r *Room) bid(seat, value int) error {
	events, err := r.whist.Bid(seat, value)
	if err != nil {
		return err
	}
	r.dispatch(events)
	return nil
}

func (r *Room) play(seat int, cardID string) error {
	events, err := r.whist.Play(seat, cardID)
	if err != nil {
		return err
	}
	r.dispatch(events)
	return nil
}

// padWithBots seats a bot on every table seat without a player. Bots stay
// for the life of the room.
func (r *Room) padWithBots() {
	for seat := 0; seat < game.Seats; seat++ {
		if _, ok := r.players[seat]; !ok {
			r.players[seat] = botPlayer(seat)
		}
	}
	if r.nextSeat < game.Seats {
		r.nextSeat = game.Seats
	}
}

// dispatch delivers engine events and arms the timers they ask for.
func (r *Room) dispatch(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventTrickComplete:
			r.schedule(r.opts.TrickDelay, r.resolveTrick)
		case game.EventRedeal:
			r.schedule(r.opts.RedealDelay, r.redeal)
		default:
			msg, ok := toMessage(ev)
			if !ok {
				log.Warn().Str("room", r.id).Str("kind", string(ev.Kind)).Msg("unknown event kind")
				continue
			}
			if ev.Seat == game.Everyone {
				r.broadcast(msg, "")
			} else {
				r.sendTo(ev.Seat, msg)
			}
		}
	}
	r.scheduleBot()
}

func (r *Room) resolveTrick() {
	events, err := r.whist.ResolveTrick()
	if err != nil {
		log.Debug().Err(err).Str("room", r.id).Msg("stale trick resolution")
		return
	}
	r.dispatch(events)
}

func (r *Room) redeal() {
	if r.whist.Phase() == game.PhaseScoring {
		if err := r.whist.NextHand(); err != nil {
			log.Debug().Err(err).Str("room", r.id).Msg("stale redeal")
			return
		}
	}
	if r.whist.Phase() != game.PhaseWaiting {
		return
	}
	if err := r.start(); err != nil {
		log.Error().Err(err).Str("room", r.id).Msg("redeal")
	}
}

// scheduleBot arms the stand-in for the seat whose turn it is, if that seat
// is a bot and it has something to do.
func (r *Room) scheduleBot() {
	if r.botPending {
		return
	}
	seat := r.whist.Turn()
	p, ok := r.players[seat]
	if !ok || !p.IsBot {
		return
	}
	phase := r.whist.Phase()
	switch phase {
	case game.PhaseBidding:
	case game.PhasePlaying:
		if !r.opts.BotsPlayCards || len(r.whist.Trick()) == game.Seats {
			return
		}
	default:
		return
	}

	r.botPending = true
	r.schedule(r.opts.BotDelay, func() {
		r.botPending = false
		r.botAct(seat, phase)
		r.scheduleBot()
	})
}

func (r *Room) botAct(seat int, phase game.Phase) {
	p, ok := r.players[seat]
	if !ok || !p.IsBot || r.whist.Turn() != seat || r.whist.Phase() != phase {
		return
	}

	var err error
	switch phase {
	case game.PhaseBidding:
		err = r.bid(seat, 0)
	case game.PhasePlaying:
		card, ok := game.ChooseCard(r.whist.Hand(seat), r.whist.Trick())
		if !ok {
			return
		}
		err = r.play(seat, card.ID)
	}
	if err != nil {
		log.Debug().Err(err).Str("room", r.id).Int("seat", seat).Msg("bot action rejected")
	}
}
