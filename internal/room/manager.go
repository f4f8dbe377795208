package room

import (
	"bidwhist/internal/shared"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store keeps the rooms a Manager has created.
type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string)
	ListRooms() []*Room
}

type binding struct {
	roomID string
	seat   int
}

// Manager is the room registry. It also owns the connection table mapping
// each live connection to the room and seat it occupies.
//
// Lock order: a room's lock may be held while taking the manager's, never
// the other way round.
type Manager struct {
	mu    sync.Mutex
	store Store
	conns map[string]binding
	sched Scheduler
	opts  Options
}

func NewManager(s Store, sched Scheduler, opts Options) *Manager {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Manager{
		store: s,
		conns: map[string]binding{},
		sched: sched,
		opts:  opts,
	}
}

// CreateRoom allocates a fresh room with an unused id.
func (m *Manager) CreateRoom(kind Kind, name string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := randCode(6)
	for {
		if _, taken := m.store.GetRoom(id); !taken {
			break
		}
		id = randCode(6)
	}
	if name == "" {
		name = "Room " + id
	}

	r := newRoom(id, kind, name, m.sched, m.opts, m.deregister)
	m.store.SaveRoom(r)
	log.Info().Str("room", id).Str("kind", string(kind)).Str("name", name).Msg("room created")
	return r
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.GetRoom(id)
}

// ListRooms returns a snapshot of the open rooms ordered by id.
func (m *Manager) ListRooms() []shared.RoomSummary {
	m.mu.Lock()
	rooms := m.store.ListRooms()
	m.mu.Unlock()

	out := make([]shared.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		if r.Closed() {
			continue
		}
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// JoinRoom seats conn in room id and records the binding.
func (m *Manager) JoinRoom(id string, conn Conn, name string) (*Room, int, error) {
	r, ok := m.GetRoom(id)
	if !ok {
		return nil, -1, ErrRoomNotFound
	}
	seat, err := r.AddMember(conn, name)
	if err != nil {
		// closed between lookup and join
		return nil, -1, ErrRoomNotFound
	}

	m.mu.Lock()
	m.conns[conn.ID()] = binding{roomID: id, seat: seat}
	m.mu.Unlock()
	return r, seat, nil
}

// Lookup returns the room and seat conn currently occupies.
func (m *Manager) Lookup(connID string) (*Room, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.conns[connID]
	if !ok {
		return nil, -1, false
	}
	r, ok := m.store.GetRoom(b.roomID)
	if !ok {
		delete(m.conns, connID)
		return nil, -1, false
	}
	return r, b.seat, true
}

// Leave removes conn from its room, if any. The room tears itself down when
// this was its last member.
func (m *Manager) Leave(connID string) {
	m.mu.Lock()
	b, ok := m.conns[connID]
	delete(m.conns, connID)
	var r *Room
	if ok {
		r, ok = m.store.GetRoom(b.roomID)
	}
	m.mu.Unlock()

	if ok {
		r.RemoveMember(connID)
	}
}

// CloseRoom shuts a room and drops it from the registry along with any
// bindings into it. Pending timers of the room become no-ops.
func (m *Manager) CloseRoom(id string) {
	m.mu.Lock()
	r, ok := m.store.GetRoom(id)
	if ok {
		m.store.DeleteRoom(id)
		for connID, b := range m.conns {
			if b.roomID == id {
				delete(m.conns, connID)
			}
		}
	}
	m.mu.Unlock()

	if ok {
		r.close()
		log.Info().Str("room", id).Msg("room deleted")
	}
}

// Disconnect is Leave for a connection that has gone away.
func (m *Manager) Disconnect(connID string) {
	m.Leave(connID)
}

func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store.ListRooms())
}

func (m *Manager) ConnectionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// deregister is called by a room, under its own lock, once it has emptied.
func (m *Manager) deregister(r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.DeleteRoom(r.ID())
	log.Info().Str("room", r.ID()).Msg("room deleted (empty)")
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
