package room

import (
	"bidwhist/internal/game"
	"bidwhist/internal/shared"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Kind string

const (
	KindBidWhist Kind = "bidwhist"
	// KindGeneric is the placeholder variant: members and relay only, no table.
	KindGeneric Kind = "generic"
)

// ParseKind accepts the game type as clients spell it ("bidwhist",
// "BID_WHIST", "bid-whist", ...).
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "bidwhist":
		return KindBidWhist, nil
	case "generic":
		return KindGeneric, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGameType, s)
}

type Player struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	ConnID string `json:"-"`
	IsBot  bool   `json:"isBot"`
}

type member struct {
	conn Conn
	seat int
	name string
}

// Options tunes the timers and bots of every room a Manager creates.
type Options struct {
	BotDelay      time.Duration
	TrickDelay    time.Duration
	RedealDelay   time.Duration
	BotsPlayCards bool
	// NewRand seeds the shuffler of each new table.
	NewRand func() *rand.Rand
}

type Room struct {
	mu sync.Mutex

	id        string
	kind      Kind
	name      string
	createdAt time.Time

	members  map[string]*member
	players  map[int]*Player
	nextSeat int
	closed   bool

	sched   Scheduler
	opts    Options
	onEmpty func(*Room)

	whist      *game.BidWhist
	botPending bool
}

func newRoom(id string, kind Kind, name string, sched Scheduler, opts Options, onEmpty func(*Room)) *Room {
	r := &Room{
		id:        id,
		kind:      kind,
		name:      name,
		createdAt: time.Now(),
		members:   map[string]*member{},
		players:   map[int]*Player{},
		sched:     sched,
		opts:      opts,
		onEmpty:   onEmpty,
	}
	if kind == KindBidWhist {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if opts.NewRand != nil {
			rng = opts.NewRand()
		}
		r.whist = game.NewBidWhist(rng)
	}
	return r
}

func (r *Room) ID() string { return r.id }

func (r *Room) Kind() Kind { return r.kind }

func (r *Room) Name() string { return r.name }

// AddMember seats conn at the next unused seat index. Indices are never
// handed out twice within a room's life.
func (r *Room) AddMember(conn Conn, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return -1, ErrRoomClosed
	}
	if m, ok := r.members[conn.ID()]; ok {
		return m.seat, nil
	}

	seat := r.nextSeat
	r.nextSeat++
	r.members[conn.ID()] = &member{conn: conn, seat: seat, name: name}
	r.players[seat] = &Player{Seat: seat, Name: name, ConnID: conn.ID()}

	r.broadcast(shared.Membership{Type: shared.TypeUserJoined, PlayerID: seat, Name: name}, conn.ID())
	log.Info().Str("room", r.id).Int("seat", seat).Str("name", name).Int("members", len(r.members)).Msg("member joined")
	return seat, nil
}

// RemoveMember drops conn and its seat. A human leaving a Bid Whist seat is
// replaced by a bot so the table keeps moving. The room closes itself when
// its last member leaves.
func (r *Room) RemoveMember(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[connID]
	if !ok {
		return
	}
	delete(r.members, connID)
	delete(r.players, m.seat)

	if r.whist != nil && m.seat < game.Seats && !r.closed {
		r.players[m.seat] = botPlayer(m.seat)
	}

	log.Info().Str("room", r.id).Int("seat", m.seat).Str("name", m.name).Int("members", len(r.members)).Msg("member left")

	if len(r.members) == 0 {
		r.closed = true
		log.Info().Str("room", r.id).Dur("age", time.Since(r.createdAt)).Msg("room closed")
		if r.onEmpty != nil {
			r.onEmpty(r)
		}
		return
	}

	r.broadcast(shared.Membership{Type: shared.TypeUserLeft, PlayerID: m.seat, Name: m.name}, "")
	if r.whist != nil {
		r.scheduleBot()
	}
}

// Broadcast sends msg to every open member except exclude.
func (r *Room) Broadcast(msg any, exclude string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast(msg, exclude)
}

// SendTo delivers msg to the member holding seat. Bots, empty seats and
// closed connections are skipped silently.
func (r *Room) SendTo(seat int, msg any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendTo(seat, msg)
}

// Relay forwards a raw client payload to everyone but its sender.
func (r *Room) Relay(from string, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.members {
		if id == from || !m.conn.Open() {
			continue
		}
		if err := m.conn.Send(raw); err != nil {
			log.Debug().Err(err).Str("room", r.id).Str("conn", id).Msg("relay dropped")
		}
	}
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// close marks the room closed without notifying the registry.
func (r *Room) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *Room) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Players returns the seated players ordered by seat.
func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

func (r *Room) Summary() shared.RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return shared.RoomSummary{
		ID:          r.id,
		Name:        r.name,
		GameType:    string(r.kind),
		PlayerCount: len(r.members),
	}
}

func (r *Room) broadcast(msg any, exclude string) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("room", r.id).Msg("marshal broadcast")
		return
	}
	for id, m := range r.members {
		if id == exclude || !m.conn.Open() {
			continue
		}
		if err := m.conn.Send(data); err != nil {
			log.Debug().Err(err).Str("room", r.id).Str("conn", id).Msg("send dropped")
		}
	}
}

func (r *Room) sendTo(seat int, msg any) {
	p, ok := r.players[seat]
	if !ok || p.IsBot {
		return
	}
	m, ok := r.members[p.ConnID]
	if !ok || !m.conn.Open() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("room", r.id).Msg("marshal message")
		return
	}
	if err := m.conn.Send(data); err != nil {
		log.Debug().Err(err).Str("room", r.id).Int("seat", seat).Msg("send dropped")
	}
}

// schedule runs fn under the room lock after d, unless the room has closed
// in the meantime.
func (r *Room) schedule(d time.Duration, fn func()) {
	r.sched.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			return
		}
		fn()
	})
}

func botPlayer(seat int) *Player {
	return &Player{Seat: seat, Name: fmt.Sprintf("Bot %d", seat+1), IsBot: true}
}
