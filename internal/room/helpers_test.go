package room

import (
	"encoding/json"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// manualScheduler queues callbacks until the test steps them.
type manualScheduler struct {
	mu    sync.Mutex
	queue []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, f)
}

func (s *manualScheduler) Step() bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	f := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()
	f()
	return true
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Drain steps until the queue is empty or limit callbacks have run.
func (s *manualScheduler) Drain(limit int) int {
	n := 0
	for n < limit && s.Step() {
		n++
	}
	return n
}

type fakeConn struct {
	id string

	mu   sync.Mutex
	sent [][]byte
	shut bool
}

func newFakeConn(id string) *fakeConn { return &fakeConn{id: id} }

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.shut
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shut = true
}

// Types lists the "type" field of every message sent so far.
func (c *fakeConn) Types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.sent))
	for _, raw := range c.sent {
		var head struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(raw, &head)
		out = append(out, head.Type)
	}
	return out
}

// Last decodes the most recent message of kind typ into v.
func (c *fakeConn) Last(typ string, v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.sent) - 1; i >= 0; i-- {
		var head struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(c.sent[i], &head) == nil && head.Type == typ {
			return json.Unmarshal(c.sent[i], v) == nil
		}
	}
	return false
}

func (c *fakeConn) Count(typ string) int {
	n := 0
	for _, got := range c.Types() {
		if got == typ {
			n++
		}
	}
	return n
}

func (c *fakeConn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = nil
}

type mockConn struct {
	mock.Mock
}

func (m *mockConn) ID() string {
	return m.Called().String(0)
}

func (m *mockConn) Send(data []byte) error {
	return m.Called(data).Error(0)
}

func (m *mockConn) Open() bool {
	return m.Called().Bool(0)
}

type mapStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func newMapStore() *mapStore { return &mapStore{rooms: map[string]*Room{}} }

func (s *mapStore) GetRoom(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

func (s *mapStore) SaveRoom(r *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID()] = r
}

func (s *mapStore) DeleteRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

func (s *mapStore) ListRooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

func testOptions() Options {
	return Options{
		BotDelay:      time.Second,
		TrickDelay:    time.Second,
		RedealDelay:   time.Second,
		BotsPlayCards: true,
		NewRand:       func() *rand.Rand { return rand.New(rand.NewSource(7)) },
	}
}

func newTestManager(t *testing.T) (*Manager, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	return NewManager(newMapStore(), sched, testOptions()), sched
}
