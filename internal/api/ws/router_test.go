package ws

import (
	"testing"

	"bidwhist/internal/game"
	"bidwhist/internal/room"
	"bidwhist/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedMessages(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	c := newFakeConn("c")

	for _, raw := range []string{"not json", "{}", `{"type":""}`, `[1,2]`} {
		rt.Handle(c, []byte(raw))
	}

	require.Len(t, c.Types(), 4)
	var e shared.Error
	require.True(t, c.Last(shared.TypeError, &e))
	assert.Equal(t, "Invalid message format", e.Message)
	assert.Equal(t, 4, c.Count(shared.TypeError))
}

func TestCreateBidWhistStarts(t *testing.T) {
	rt, rm, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"bidwhist","name":"Ann"}`))

	types := c.Types()
	require.NotEmpty(t, types)
	assert.Equal(t, shared.TypeRoomCreated, types[0])
	assert.Contains(t, types, shared.TypeHandDealt)
	assert.Contains(t, types, shared.TypeGameState)

	var created shared.RoomJoined
	require.True(t, c.Last(shared.TypeRoomCreated, &created))
	assert.Equal(t, 0, created.PlayerID)
	assert.Equal(t, "bidwhist", created.GameType)

	r, seat, ok := rm.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, created.RoomID, r.ID())
	assert.Equal(t, 0, seat)
	assert.Len(t, r.Players(), game.Seats)
}

func TestCreateDefaultsToBidWhist(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"CREATE_GAME"}`))

	var created shared.RoomJoined
	require.True(t, c.Last(shared.TypeRoomCreated, &created))
	assert.Equal(t, "bidwhist", created.GameType)
}

func TestCreateUnknownGameType(t *testing.T) {
	rt, rm, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"spades"}`))

	var e shared.Error
	require.True(t, c.Last(shared.TypeError, &e))
	assert.Equal(t, "Unknown game type", e.Message)
	assert.Zero(t, rm.RoomCount())
}

func TestCreateLeavesPreviousRoom(t *testing.T) {
	rt, rm, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"generic","name":"one"}`))
	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"generic","name":"two"}`))

	rooms := rm.ListRooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, "two", rooms[0].Name)
}

func TestListRooms(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	a, b := newFakeConn("a"), newFakeConn("b")

	rt.Handle(b, []byte(`{"type":"LIST_ROOMS"}`))
	var list shared.RoomList
	require.True(t, b.Last(shared.TypeRoomList, &list))
	assert.Empty(t, list.Rooms)

	rt.Handle(a, []byte(`{"type":"CREATE_GAME","gameType":"generic","name":"lobby"}`))
	rt.Handle(b, []byte(`{"type":"LIST_ROOMS"}`))
	require.True(t, b.Last(shared.TypeRoomList, &list))
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, "lobby", list.Rooms[0].Name)
	assert.Equal(t, "generic", list.Rooms[0].GameType)
	assert.Equal(t, 1, list.Rooms[0].PlayerCount)
}

func TestJoinBidWhistSyncsState(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	a, b := newFakeConn("a"), newFakeConn("b")

	rt.Handle(a, []byte(`{"type":"CREATE_GAME","gameType":"bidwhist","name":"Ann"}`))
	var created shared.RoomJoined
	require.True(t, a.Last(shared.TypeRoomCreated, &created))

	rt.Handle(b, msg(t, map[string]string{"type": "JOIN_GAME", "roomId": created.RoomID, "name": "Bob"}))

	types := b.Types()
	require.NotEmpty(t, types)
	assert.Equal(t, shared.TypeJoinedRoom, types[0])
	var joined shared.RoomJoined
	require.True(t, b.Last(shared.TypeJoinedRoom, &joined))
	assert.Equal(t, game.Seats, joined.PlayerID, "table already padded with bots")
	assert.Equal(t, 1, b.Count(shared.TypeGameState))

	var notice shared.Membership
	require.True(t, a.Last(shared.TypeUserJoined, &notice))
	assert.Equal(t, "Bob", notice.Name)
	assert.Equal(t, game.Seats, notice.PlayerID)
}

func TestJoinUnknownRoomReplies(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"JOIN_GAME","roomId":"ZZZZZZ","name":"Ann"}`))

	var e shared.Error
	require.True(t, c.Last(shared.TypeError, &e))
	assert.Equal(t, "Room not found", e.Message)
}

func TestJoinUnknownRoomKeepsCurrentSeat(t *testing.T) {
	rt, rm, _ := newTestRouter(t)
	c := newFakeConn("c")
	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"bidwhist","name":"Ann"}`))
	before, seat, ok := rm.Lookup("c")
	require.True(t, ok)

	rt.Handle(c, []byte(`{"type":"JOIN_GAME","roomId":"ZZZZZZ","name":"Ann"}`))

	var e shared.Error
	require.True(t, c.Last(shared.TypeError, &e))
	assert.Equal(t, "Room not found", e.Message)

	after, afterSeat, ok := rm.Lookup("c")
	require.True(t, ok, "still seated")
	assert.Same(t, before, after)
	assert.Equal(t, seat, afterSeat)
	assert.False(t, after.Closed())

	rooms := rm.ListRooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, before.ID(), rooms[0].ID)
	assert.Equal(t, 1, rooms[0].PlayerCount)
}

// refusingManager creates rooms normally but fails every join.
type refusingManager struct {
	*room.Manager
}

func (refusingManager) JoinRoom(string, room.Conn, string) (*room.Room, int, error) {
	return nil, -1, room.ErrRoomNotFound
}

func TestCreateGameDropsRoomWhenJoinFails(t *testing.T) {
	_, rm, sched := newTestRouter(t)
	rt := NewRouter(refusingManager{rm})
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"bidwhist","name":"Ann"}`))

	var e shared.Error
	require.True(t, c.Last(shared.TypeError, &e))
	assert.Equal(t, "Room not found", e.Message)
	assert.Zero(t, c.Count(shared.TypeRoomCreated))
	assert.Empty(t, rm.ListRooms())
	assert.Zero(t, rm.ConnectionCount())
	assert.False(t, sched.Step(), "nothing was scheduled")
}

func TestBidAndPlayUseSenderSeat(t *testing.T) {
	rt, rm, sched := newTestRouter(t)
	c := newFakeConn("c")
	rt.Handle(c, []byte(`{"type":"CREATE_GAME","gameType":"bidwhist","name":"Ann"}`))
	r, _, ok := rm.Lookup("c")
	require.True(t, ok)

	// out of turn, dropped without a reply
	rt.Handle(c, []byte(`{"type":"BID","val":3}`))
	assert.Zero(t, c.Count(shared.TypeError))
	st, _ := r.State()
	assert.Empty(t, st.Bids)

	for sched.Step() {
	}
	rt.Handle(c, []byte(`{"type":"BID","val":4}`))

	var cs shared.ContractSet
	require.True(t, c.Last(shared.TypeContractSet, &cs))
	assert.Equal(t, game.Contract{Declarer: 0, TricksBid: 4, Trump: game.Spade}, cs.Contract)

	for sched.Step() {
	}
	st, _ = r.State()
	require.Equal(t, game.PhasePlaying, st.Phase)
	require.Equal(t, 0, st.Turn)
	require.Len(t, st.CurrentTrick, 3)

	card := r.Hand(0)[0]
	played := c.Count(shared.TypeCardPlayed)
	rt.Handle(c, msg(t, map[string]any{
		"type": "PLAY_CARD",
		"card": map[string]string{"suit": string(card.Suit), "rank": string(card.Rank)},
	}))

	assert.Equal(t, played+1, c.Count(shared.TypeCardPlayed))
	assert.Len(t, r.Hand(0), game.HandSize-1)

	// replaying the same card is silently rejected
	rt.Handle(c, msg(t, map[string]any{"type": "PLAY_CARD", "card": card.ID}))
	assert.Zero(t, c.Count(shared.TypeError))
}

func TestPlayCardWithoutCard(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"PLAY_CARD"}`))

	var e shared.Error
	require.True(t, c.Last(shared.TypeError, &e))
	assert.Equal(t, "Invalid message format", e.Message)
}

func TestPassthroughRelay(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	rt.Handle(a, []byte(`{"type":"CREATE_GAME","gameType":"generic","name":"call"}`))
	var created shared.RoomJoined
	require.True(t, a.Last(shared.TypeRoomCreated, &created))
	rt.Handle(b, msg(t, map[string]string{"type": "JOIN_GAME", "roomId": created.RoomID, "name": "Bob"}))

	offer := []byte(`{"type":"offer","sdp":"v=0"}`)
	rt.Handle(a, offer)

	raw := b.Raw()
	assert.Equal(t, offer, raw[len(raw)-1])
	assert.Zero(t, a.Count("offer"))
}

func TestPassthroughOutsideRoomDropped(t *testing.T) {
	rt, _, _ := newTestRouter(t)
	c := newFakeConn("c")

	rt.Handle(c, []byte(`{"type":"chat","text":"anyone?"}`))

	assert.Empty(t, c.Types())
}

func TestLeaveRoom(t *testing.T) {
	rt, rm, _ := newTestRouter(t)
	a, b := newFakeConn("a"), newFakeConn("b")
	rt.Handle(a, []byte(`{"type":"CREATE_GAME","gameType":"generic","name":"x"}`))
	var created shared.RoomJoined
	require.True(t, a.Last(shared.TypeRoomCreated, &created))
	rt.Handle(b, msg(t, map[string]string{"type": "JOIN_GAME", "roomId": created.RoomID, "name": "Bob"}))

	rt.Handle(a, []byte(`{"type":"LEAVE_ROOM"}`))

	_, _, ok := rm.Lookup("a")
	assert.False(t, ok)
	var left shared.Membership
	require.True(t, b.Last(shared.TypeUserLeft, &left))
	assert.Equal(t, 0, left.PlayerID)

	rt.Disconnect(b)
	assert.Zero(t, rm.RoomCount())
}
