package room

import "fmt"

// Code is a stable identifier for a RoomError, used by the gateway to
// project errors onto the wire without string-sniffing.
type Code string

const (
	ErrRoomNotFound        Code = "ROOM_NOT_FOUND"
	ErrNotInRoom           Code = "NOT_IN_ROOM"
	ErrNotHost             Code = "NOT_HOST"
	ErrGameAlreadyStarted  Code = "GAME_ALREADY_STARTED"
	ErrNotEnoughPlayers    Code = "NOT_ENOUGH_PLAYERS"
	ErrGameInProgress      Code = "GAME_IN_PROGRESS"
	ErrSeatOccupied        Code = "SEAT_OCCUPIED"
	ErrAlreadySeated       Code = "ALREADY_SEATED"
	ErrInvalidSeatIndex    Code = "INVALID_SEAT_INDEX"
	ErrNotSeated           Code = "NOT_SEATED"
	ErrCannotKickSelf      Code = "CANNOT_KICK_SELF"
	ErrTargetNotFound      Code = "TARGET_NOT_FOUND"
	ErrDuplicateRequest    Code = "DUPLICATE_REQUEST"
	ErrStaleRequest        Code = "STALE_REQUEST"
	ErrNotYourTurn         Code = "NOT_YOUR_TURN"
	ErrCannotAct           Code = "CANNOT_ACT"
	ErrCannotCheckMustCall Code = "CANNOT_CHECK_MUST_CALL"
	ErrNothingToCall       Code = "NOTHING_TO_CALL"
	ErrRaiseTooSmall       Code = "RAISE_TOO_SMALL"
	ErrNotEnoughChips      Code = "NOT_ENOUGH_CHIPS"
	ErrPlayersNotReady     Code = "PLAYERS_NOT_READY"
)

// RoomError is the typed error every RoomManager/GameController method
// returns on validation failure. ShouldClearSession instructs the gateway
// to tell the client to forget its locally persisted {roomId, playerId}.
type RoomError struct {
	Code               Code
	Message            string
	ShouldClearSession bool
}

func (e *RoomError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newErr(code Code, msg string) *RoomError {
	return &RoomError{Code: code, Message: msg}
}

func newClearingErr(code Code, msg string) *RoomError {
	return &RoomError{Code: code, Message: msg, ShouldClearSession: true}
}
