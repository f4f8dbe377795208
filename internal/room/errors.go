package room

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomClosed      = errors.New("room closed")
	ErrNotBidWhist     = errors.New("room has no bid whist table")
	ErrUnknownGameType = errors.New("unknown game type")
)
