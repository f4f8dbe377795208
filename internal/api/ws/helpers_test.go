package ws

import (
	"encoding/json"
	"math/rand"
	"sync"
	"testing"
	"time"

	"bidwhist/internal/room"
	"bidwhist/internal/store"
)

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

type fakeConn struct {
	id   string
	mu   sync.Mutex
	sent [][]byte
}

func newFakeConn(id string) *fakeConn { return &fakeConn{id: id} }

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Open() bool { return true }

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

func (c *fakeConn) Raw() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.sent...)
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

func newTestRouter(t *testing.T) (*Router, *room.Manager, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	rm := room.NewManager(store.NewMemoryStore(), sched, room.Options{
		BotDelay:      time.Millisecond,
		TrickDelay:    time.Millisecond,
		RedealDelay:   time.Millisecond,
		BotsPlayCards: true,
		NewRand:       func() *rand.Rand { return rand.New(rand.NewSource(3)) },
	})
	return NewRouter(rm), rm, sched
}

func msg(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
