package game

import "errors"

// Rule violations. These are expected, user-facing errors: the transport layer
// maps them to response codes and the caller may retry with a corrected command.
var (
	ErrNotHost            = errors.New("NOT_HOST")
	ErrNotEnoughPlayers   = errors.New("NOT_ENOUGH_PLAYERS")
	ErrGameAlreadyStarted = errors.New("GAME_ALREADY_STARTED")
	ErrRoomFull           = errors.New("ROOM_FULL")
	ErrRoomNotFound       = errors.New("ROOM_NOT_FOUND")
	ErrNotYourTurn        = errors.New("NOT_YOUR_TURN")
	ErrMustPlayCards      = errors.New("MUST_PLAY_CARDS")
	ErrInvalidCardCount   = errors.New("INVALID_CARD_COUNT")
	ErrInvalidValue       = errors.New("INVALID_VALUE")
	ErrNoCardsToChallenge = errors.New("NO_CARDS_TO_CHALLENGE")
	ErrPlayerNotInRoom    = errors.New("PLAYER_NOT_IN_ROOM")
)

// ErrInternal marks data-integrity faults (e.g. a registered player with no
// hand entry). Never caused by client input; the room is left unmodified.
var ErrInternal = errors.New("INTERNAL_ERROR")

// Kind returns the stable error code for err, or "INTERNAL_ERROR" for
// anything outside the taxonomy.
func Kind(err error) string {
	for _, e := range []error{
		ErrNotHost, ErrNotEnoughPlayers, ErrGameAlreadyStarted, ErrRoomFull,
		ErrRoomNotFound, ErrNotYourTurn, ErrMustPlayCards, ErrInvalidCardCount,
		ErrInvalidValue, ErrNoCardsToChallenge, ErrPlayerNotInRoom,
	} {
		if errors.Is(err, e) {
			return e.Error()
		}
	}
	return ErrInternal.Error()
}
