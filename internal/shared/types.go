package shared

import (
	"bidwhist/internal/game"
	"encoding/json"
	"errors"
)

// Inbound message kinds.
const (
	TypeListRooms  = "LIST_ROOMS"
	TypeCreateGame = "CREATE_GAME"
	TypeJoinGame   = "JOIN_GAME"
	TypeBid        = "BID"
	TypePlayCard   = "PLAY_CARD"
	TypeLeaveRoom  = "LEAVE_ROOM"
)

// Outbound message kinds.
const (
	TypeRoomList      = "ROOM_LIST"
	TypeRoomCreated   = "ROOM_CREATED"
	TypeJoinedRoom    = "JOINED_ROOM"
	TypeHandDealt     = "HAND_DEALT"
	TypeRequestBid    = "REQUEST_BID"
	TypeBidUpdate     = "BID_UPDATE"
	TypeContractSet   = "CONTRACT_SET"
	TypeGameState     = "GAME_STATE"
	TypeCardPlayed    = "CARD_PLAYED"
	TypeTrickResolved = "TRICK_RESOLVED"
	TypeHandScored    = "HAND_SCORED"
	TypeUserJoined    = "user-joined"
	TypeUserLeft      = "user-left"
	TypeError         = "error"
)

var ErrNoCard = errors.New("no card in message")

// Inbound is the union of every field a client may send.
type Inbound struct {
	Type     string          `json:"type"`
	GameType string          `json:"gameType,omitempty"`
	Name     string          `json:"name,omitempty"`
	RoomID   string          `json:"roomId,omitempty"`
	Val      int             `json:"val,omitempty"`
	Card     json.RawMessage `json:"card,omitempty"`
}

// CardID accepts either a card object or its bare id string.
func (m Inbound) CardID() (string, error) {
	if len(m.Card) == 0 {
		return "", ErrNoCard
	}
	var id string
	if err := json.Unmarshal(m.Card, &id); err == nil {
		return id, nil
	}
	var c game.Card
	if err := json.Unmarshal(m.Card, &c); err != nil {
		return "", err
	}
	if c.ID != "" {
		return c.ID, nil
	}
	if c.Suit == "" || c.Rank == "" {
		return "", ErrNoCard
	}
	return game.NewCard(c.Suit, c.Rank).ID, nil
}

type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GameType    string `json:"gameType"`
	PlayerCount int    `json:"playerCount"`
}

type RoomList struct {
	Type  string        `json:"type"`
	Rooms []RoomSummary `json:"rooms"`
}

// RoomJoined answers both CREATE_GAME and JOIN_GAME.
type RoomJoined struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PlayerID int    `json:"playerId"`
	GameType string `json:"gameType"`
}

type HandDealt struct {
	Type string      `json:"type"`
	Hand []game.Card `json:"hand"`
}

type RequestBid struct {
	Type   string `json:"type"`
	MinBid int    `json:"minBid"`
}

type BidUpdate struct {
	Type string `json:"type"`
	Seat int    `json:"seat"`
	Val  int    `json:"val"`
}

type ContractSet struct {
	Type     string        `json:"type"`
	Contract game.Contract `json:"contract"`
}

type GameState struct {
	Type  string           `json:"type"`
	State game.PublicState `json:"state"`
}

type CardPlayed struct {
	Type string    `json:"type"`
	Seat int       `json:"seat"`
	Card game.Card `json:"card"`
}

type TrickResolved struct {
	Type   string `json:"type"`
	Winner int    `json:"winner"`
}

type HandScored struct {
	Type      string        `json:"type"`
	Contract  game.Contract `json:"contract"`
	TricksWon [2]int        `json:"tricksWon"`
	Delta     [2]int        `json:"delta"`
	Scores    [2]int        `json:"scores"`
	Made      bool          `json:"made"`
}

// Membership is the user-joined / user-left notice.
type Membership struct {
	Type     string `json:"type"`
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(msg string) Error {
	return Error{Type: TypeError, Message: msg}
}
