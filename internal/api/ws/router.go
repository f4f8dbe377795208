package ws

import (
	"encoding/json"

	"bidwhist/internal/room"
	"bidwhist/internal/shared"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidFormat   = "Invalid message format"
	msgRoomNotFound    = "Room not found"
	msgUnknownGameType = "Unknown game type"
)

// Router decodes inbound client messages and applies them to the registry
// and the sender's room.
type Router struct {
	rooms RoomManager
}

func NewRouter(rooms RoomManager) *Router {
	return &Router{rooms: rooms}
}

func (rt *Router) Handle(conn room.Conn, data []byte) {
	var in shared.Inbound
	if err := json.Unmarshal(data, &in); err != nil || in.Type == "" {
		reply(conn, shared.NewError(msgInvalidFormat))
		return
	}

	switch in.Type {
	case shared.TypeListRooms:
		reply(conn, shared.RoomList{Type: shared.TypeRoomList, Rooms: rt.rooms.ListRooms()})
	case shared.TypeCreateGame:
		rt.createGame(conn, in)
	case shared.TypeJoinGame:
		rt.joinGame(conn, in)
	case shared.TypeBid:
		rt.bid(conn, in)
	case shared.TypePlayCard:
		rt.playCard(conn, in)
	case shared.TypeLeaveRoom:
		rt.rooms.Leave(conn.ID())
	default:
		r, _, ok := rt.rooms.Lookup(conn.ID())
		if !ok {
			log.Debug().Str("conn", conn.ID()).Str("type", in.Type).Msg("passthrough outside a room dropped")
			return
		}
		r.Relay(conn.ID(), data)
	}
}

// Disconnect releases whatever seat conn held.
func (rt *Router) Disconnect(conn room.Conn) {
	rt.rooms.Disconnect(conn.ID())
}

func (rt *Router) createGame(conn room.Conn, in shared.Inbound) {
	kind := room.KindBidWhist
	if in.GameType != "" {
		k, err := room.ParseKind(in.GameType)
		if err != nil {
			reply(conn, shared.NewError(msgUnknownGameType))
			return
		}
		kind = k
	}

	rt.rooms.Leave(conn.ID())
	r := rt.rooms.CreateRoom(kind, in.Name)
	_, seat, err := rt.rooms.JoinRoom(r.ID(), conn, playerName(in.Name))
	if err != nil {
		rt.rooms.CloseRoom(r.ID())
		reply(conn, shared.NewError(msgRoomNotFound))
		return
	}
	reply(conn, shared.RoomJoined{
		Type:     shared.TypeRoomCreated,
		RoomID:   r.ID(),
		PlayerID: seat,
		GameType: string(kind),
	})

	if kind == room.KindBidWhist {
		if err := r.Start(); err != nil {
			log.Error().Err(err).Str("room", r.ID()).Msg("start")
		}
	}
}

func (rt *Router) joinGame(conn room.Conn, in shared.Inbound) {
	if cur, seat, ok := rt.rooms.Lookup(conn.ID()); ok && cur.ID() == in.RoomID {
		reply(conn, shared.RoomJoined{Type: shared.TypeJoinedRoom, RoomID: cur.ID(), PlayerID: seat, GameType: string(cur.Kind())})
		return
	}
	if _, ok := rt.rooms.GetRoom(in.RoomID); !ok {
		log.Debug().Str("conn", conn.ID()).Str("room", in.RoomID).Msg("join unknown room")
		reply(conn, shared.NewError(msgRoomNotFound))
		return
	}
	rt.rooms.Leave(conn.ID())

	r, seat, err := rt.rooms.JoinRoom(in.RoomID, conn, playerName(in.Name))
	if err != nil {
		// closed between the lookup and the join
		log.Debug().Err(err).Str("conn", conn.ID()).Str("room", in.RoomID).Msg("join failed")
		reply(conn, shared.NewError(msgRoomNotFound))
		return
	}
	reply(conn, shared.RoomJoined{
		Type:     shared.TypeJoinedRoom,
		RoomID:   r.ID(),
		PlayerID: seat,
		GameType: string(r.Kind()),
	})
	if r.Kind() == room.KindBidWhist {
		r.SyncSeat(seat)
	}
}

func (rt *Router) bid(conn room.Conn, in shared.Inbound) {
	r, seat, ok := rt.rooms.Lookup(conn.ID())
	if !ok {
		log.Debug().Str("conn", conn.ID()).Msg("bid outside a room")
		return
	}
	if err := r.Bid(seat, in.Val); err != nil {
		log.Debug().Err(err).Str("room", r.ID()).Int("seat", seat).Msg("bid rejected")
	}
}

func (rt *Router) playCard(conn room.Conn, in shared.Inbound) {
	id, err := in.CardID()
	if err != nil {
		reply(conn, shared.NewError(msgInvalidFormat))
		return
	}
	r, seat, ok := rt.rooms.Lookup(conn.ID())
	if !ok {
		log.Debug().Str("conn", conn.ID()).Msg("play outside a room")
		return
	}
	if err := r.Play(seat, id); err != nil {
		log.Debug().Err(err).Str("room", r.ID()).Int("seat", seat).Str("card", id).Msg("play rejected")
	}
}

func playerName(name string) string {
	if name == "" {
		return "Player"
	}
	return name
}

func reply(conn room.Conn, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("marshal reply")
		return
	}
	if err := conn.Send(data); err != nil {
		log.Debug().Err(err).Str("conn", conn.ID()).Msg("reply dropped")
	}
}
