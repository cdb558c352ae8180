package engine

import (
	"errors"

	"potlogic/models"
)

// Error taxonomy. Every failure surfaced by the engine wraps one of these
// sentinels (or models.ErrParse / models.ErrInvalidCard from the card
// layer), so callers can branch with errors.Is and the API layer can map
// any engine error to a machine-readable kind.
var (
	// ErrInvalidHand is returned for a wrong card count or duplicate cards
	// passed to the hand evaluator.
	ErrInvalidHand = errors.New("invalid hand")
	// ErrInvalidInput is returned for negative or out-of-range numeric
	// fields and malformed enum values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientCards is returned when the unknown pool cannot supply
	// the cards required to deal the requested opponents and board.
	ErrInsufficientCards = errors.New("insufficient cards")
	// ErrTimeout is returned when the sampling budget is exhausted before a
	// single sample completed.
	ErrTimeout = errors.New("sampling budget exhausted")
)

// Machine-readable error kinds carried on API error responses.
const (
	KindParse             = "parse_error"
	KindInvalidHand       = "invalid_hand"
	KindInvalidInput      = "invalid_input"
	KindInsufficientCards = "insufficient_cards"
	KindTimeout           = "timeout"
	KindInternal          = "internal"
)

// Kind maps an engine error to its taxonomy kind.
func Kind(err error) string {
	switch {
	case errors.Is(err, models.ErrParse):
		return KindParse
	case errors.Is(err, ErrInvalidHand):
		return KindInvalidHand
	case errors.Is(err, models.ErrInvalidCard), errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInsufficientCards):
		return KindInsufficientCards
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	default:
		return KindInternal
	}
}
