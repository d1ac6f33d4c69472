package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room already has two players")
	ErrAlreadyInRoom = errors.New("player is already in room")
	ErrGameNotActive = errors.New("game is not active")

	// Move errors
	ErrNotYourTurn         = errors.New("not this player's turn")
	ErrInvalidPlacement    = errors.New("invalid tile placement")
	ErrRackMismatch        = errors.New("tiles are not in the player's rack")
	ErrExchangeNotAllowed  = errors.New("exchange is not allowed")
	ErrChallengeNotAllowed = errors.New("challenge is not allowed")

	// Dictionary errors
	ErrDictionaryUnavailable = errors.New("dictionary lookup unavailable")
	ErrDictionaryNotFound    = errors.New("dictionary not found")

	// Config errors
	ErrBoardConfigNotFound  = errors.New("board config not found")
	ErrDistributionNotFound = errors.New("tile distribution not found")
	ErrSummaryNotFound      = errors.New("game summary not found")
)

// InvalidWordError rejects a play move, carrying the offending word
type InvalidWordError struct {
	Word string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word: %s", e.Word)
}

// InvariantError is a fatal internal state corruption (negative time,
// impossible turn cursor). It aborts the room's session rather than surfacing
// to a player.
type InvariantError struct {
	RoomID RoomID
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("room %s invariant violated: %s", e.RoomID, e.Detail)
}
